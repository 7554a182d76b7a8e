package postgres

import (
	"context"
	"fmt"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// collectionSchema maps the logical field names used by list screens to columns.
type collectionSchema struct {
	idColumn string
	fields   map[string]string
}

var (
	usersSchema = collectionSchema{
		idColumn: "email",
		fields: map[string]string{
			"referredBy": "referred_by",
			"createdAt":  "created_at",
		},
	}

	paymentsSchema = collectionSchema{
		idColumn: "id",
		fields: map[string]string{
			"email":     "email",
			"createdAt": "created_at",
		},
	}
)

// CollectionRepository runs keyset page queries over one table.
type CollectionRepository[T domain.Pageable] struct {
	DB     *gorm.DB
	schema collectionSchema
}

func NewUserCollectionRepository(db *gorm.DB) *CollectionRepository[domain.User] {
	return &CollectionRepository[domain.User]{
		DB:     db,
		schema: usersSchema,
	}
}

func NewPaymentCollectionRepository(db *gorm.DB) *CollectionRepository[domain.Payment] {
	return &CollectionRepository[domain.Payment]{
		DB:     db,
		schema: paymentsSchema,
	}
}

func (r *CollectionRepository[T]) Find(ctx context.Context, q pagination.Query, after *domain.Cursor, limit int) ([]T, error) {
	filterCol, sortCol, err := r.columns(q)
	if err != nil {
		return nil, err
	}

	where, args, err := keysetPredicate(filterCol, q.FilterValue, sortCol, r.schema.idColumn, after)
	if err != nil {
		return nil, err
	}

	records := []T{}
	err = r.DB.WithContext(ctx).
		Model(new(T)).
		Where(where, args...).
		Order(sortCol + " DESC").
		Order(r.schema.idColumn + " DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *CollectionRepository[T]) Count(ctx context.Context, q pagination.Query) (int64, error) {
	filterCol, _, err := r.columns(q)
	if err != nil {
		return 0, err
	}

	where, args, err := sq.Eq{filterCol: q.FilterValue}.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Where(where, args...).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *CollectionRepository[T]) columns(q pagination.Query) (string, string, error) {
	filterCol, ok := r.schema.fields[q.FilterField]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnknownField, q.FilterField)
	}

	sortCol, ok := r.schema.fields[q.SortField]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnknownField, q.SortField)
	}

	return filterCol, sortCol, nil
}

// keysetPredicate builds `filter = ? AND (sort, id) < (?, ?)`; the row comparison
// keeps pages disjoint when several records share a sort value.
func keysetPredicate(filterCol, filterValue, sortCol, idCol string, after *domain.Cursor) (string, []interface{}, error) {
	pred := sq.And{sq.Eq{filterCol: filterValue}}
	if after != nil {
		pred = append(pred, sq.Expr(fmt.Sprintf("(%s, %s) < (?, ?)", sortCol, idCol), after.SortValue, after.ID))
	}

	return pred.ToSql()
}
