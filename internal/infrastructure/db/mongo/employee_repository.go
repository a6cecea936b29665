package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

const employeesCollection = "employees"

// EmployeeRepository is the MongoDB implementation of ports.EmployeeRepository.
type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection(employeesCollection)}
}

type employeeDoc struct {
	ID         string    `bson:"_id"`
	FullName   string    `bson:"full_name"`
	Username   string    `bson:"username"`
	Email      string    `bson:"email"`
	Phone      string    `bson:"phone"`
	Position   string    `bson:"position"`
	Department string    `bson:"department"`
	AvatarURL  string    `bson:"avatar_url,omitempty"`
	IsActive   bool      `bson:"is_active"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// EnsureIndexes creates the unique indexes backing the uniqueness invariant.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_1")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_1")},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// List returns one page of employees ordered by creation time (the insertion
// order of the collection) plus the total match count.
func (r *EmployeeRepository) List(ctx context.Context, filter ports.ListEmployeesFilter) ([]*domain.Employee, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	switch filter.Status {
	case "active":
		query["is_active"] = true
	case "inactive":
		query["is_active"] = false
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"full_name": re},
			bson.M{"username": re},
			bson.M{"email": re},
			bson.M{"department": re},
			bson.M{"position": re},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.PerPage)).
		SetLimit(int64(filter.PerPage))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Employee
	for cursor.Next(ctx) {
		var doc employeeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode employee: %w", err)
		}
		items = append(items, employeeToDomain(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*domain.Employee{}
	}

	return items, total, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *EmployeeRepository) FindByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return employeeToDomain(doc), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := employeeDoc{
		ID:         uuid.NewString(),
		FullName:   emp.FullName,
		Username:   emp.Username,
		Email:      emp.Email,
		Phone:      emp.Phone,
		Position:   emp.Position,
		Department: emp.Department,
		AvatarURL:  emp.AvatarURL,
		IsActive:   emp.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if duplicateKeyField(err) == "email" {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return employeeToDomain(doc), nil
}

// Update applies the non-nil fields and refreshes updated_at. The unique
// indexes reject a username/email that collides with a different record; the
// updated record itself is excluded by virtue of keeping its own value.
func (r *EmployeeRepository) Update(ctx context.Context, id string, input ports.UpdateEmployeeInput) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if input.FullName != nil {
		set["full_name"] = *input.FullName
	}
	if input.Username != nil {
		set["username"] = *input.Username
	}
	if input.Email != nil {
		set["email"] = *input.Email
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}
	if input.Position != nil {
		set["position"] = *input.Position
	}
	if input.Department != nil {
		set["department"] = *input.Department
	}
	if input.AvatarURL != nil {
		set["avatar_url"] = *input.AvatarURL
	}
	if input.IsActive != nil {
		set["is_active"] = *input.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc employeeDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			if duplicateKeyField(err) == "email" {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return employeeToDomain(doc), nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *EmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"is_active": true})
}

func employeeToDomain(doc employeeDoc) *domain.Employee {
	return &domain.Employee{
		ID:         doc.ID,
		FullName:   doc.FullName,
		Username:   doc.Username,
		Email:      doc.Email,
		Phone:      doc.Phone,
		Position:   doc.Position,
		Department: doc.Department,
		AvatarURL:  doc.AvatarURL,
		IsActive:   doc.IsActive,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
