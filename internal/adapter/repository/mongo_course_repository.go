package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
)

type mongoCourseRepository struct {
	coll *mongo.Collection
}

func NewMongoCourseRepository(db *mongo.Database) repository.CourseRepository {
	return &mongoCourseRepository{coll: db.Collection(colCourses)}
}

func (r *mongoCourseRepository) Create(ctx context.Context, course *entity.Course) error {
	return insertOne(ctx, r.coll, course)
}

func (r *mongoCourseRepository) GetByID(ctx context.Context, id int64) (*entity.Course, error) {
	return findByID[entity.Course](ctx, r.coll, id)
}

func (r *mongoCourseRepository) GetByCode(ctx context.Context, code string) (*entity.Course, error) {
	return findOneBy[entity.Course](ctx, r.coll, bson.M{"code": code})
}

func (r *mongoCourseRepository) Search(ctx context.Context, query string) ([]entity.Course, error) {
	return findMany[entity.Course](ctx, r.coll, courseSearchFilter(query),
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func courseSearchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"code": pattern},
		bson.M{"name": pattern},
	}}
}

type mongoTeacherRepository struct {
	teachers *mongo.Collection
	links    *mongo.Collection
}

func NewMongoTeacherRepository(db *mongo.Database) repository.TeacherRepository {
	return &mongoTeacherRepository{
		teachers: db.Collection(colTeachers),
		links:    db.Collection(colCourseTeachers),
	}
}

func (r *mongoTeacherRepository) Create(ctx context.Context, teacher *entity.Teacher) error {
	return insertOne(ctx, r.teachers, teacher)
}

func (r *mongoTeacherRepository) GetByID(ctx context.Context, id int64) (*entity.Teacher, error) {
	return findByID[entity.Teacher](ctx, r.teachers, id)
}

func (r *mongoTeacherRepository) GetByName(ctx context.Context, name string) (*entity.Teacher, error) {
	return findOneBy[entity.Teacher](ctx, r.teachers, bson.M{"name": name})
}

func (r *mongoTeacherRepository) LinkCourse(ctx context.Context, link *entity.CourseTeacher) error {
	_, err := r.links.UpdateOne(ctx,
		bson.M{"courseId": link.CourseID, "teacherId": link.TeacherID},
		bson.M{"$setOnInsert": bson.M{
			"id":        link.ID,
			"courseId":  link.CourseID,
			"teacherId": link.TeacherID,
			"createdAt": link.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	// A concurrent upsert of the same pair loses the unique race; the link exists either way.
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *mongoTeacherRepository) ListByCourse(ctx context.Context, courseID int64) ([]entity.Teacher, error) {
	links, err := findMany[entity.CourseTeacher](ctx, r.links, bson.M{"courseId": courseID}, nil)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []entity.Teacher{}, nil
	}

	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.TeacherID)
	}
	return findMany[entity.Teacher](ctx, r.teachers, bson.M{"id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}
