package repositories

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/models"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

// Relationship type 35 ("is identical to") is its own converse.
const selfConverseRelationship = 35

// ConverseOf returns the relationship type describing the same edge seen
// from the target object. Below the self-converse pivot the odd member of
// each pair precedes the even one, above it the even member precedes the
// odd. Zero means the converse is undefined.
func ConverseOf(relationshipType int) int {
	switch {
	case relationshipType <= 0:
		return 0
	case relationshipType < selfConverseRelationship:
		if relationshipType%2 == 0 {
			return relationshipType - 1
		}
		return relationshipType + 1
	case relationshipType == selfConverseRelationship:
		return selfConverseRelationship
	default:
		if relationshipType%2 == 0 {
			return relationshipType + 1
		}
		return relationshipType - 1
	}
}

/* Relationships */

// GetObjectRelationships lists the outbound edges of an object.
func (r *ObjectRepository) GetObjectRelationships(ctx context.Context, sdOid string) ([]models.ObjectRelationship, error) {
	sb := objectRelationshipStruct.SelectFrom(objectRelationshipsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	relationships := []models.ObjectRelationship{}
	if err := r.DB().SelectContext(ctx, &relationships, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object relationships")
		return nil, ServerError("failed to list object relationships")
	}
	return relationships, nil
}

// GetObjectRelationship returns one edge.
func (r *ObjectRepository) GetObjectRelationship(ctx context.Context, id int) (*models.ObjectRelationship, error) {
	sb := objectRelationshipStruct.SelectFrom(objectRelationshipsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var relationship models.ObjectRelationship
	err := r.DB().GetContext(ctx, &relationship, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object relationship %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object relationship")
		return nil, ServerError("failed to get object relationship")
	}
	return &relationship, nil
}

// CreateObjectRelationship inserts an edge and, when missing, the matching
// converse edge from the target back to the source, in one transaction.
// Both rows carry the same audit attribution.
func (r *ObjectRepository) CreateObjectRelationship(ctx context.Context, relationship *models.ObjectRelationship) (*models.ObjectRelationship, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectRelationship")
	defer span.End()

	editor := EditorName(ctx)
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return nil, ServerError("failed to create object relationship")
	}
	defer database.CloseTx(outerCtx, tx)

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectRelationshipsTable).
		Cols("sd_oid", "relationship_type_id", "target_sd_oid", "last_edited_by").
		Values(relationship.SdOid, relationship.RelationshipTypeID, relationship.TargetSdOid, editor).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object relationship")
		return nil, ServerError("failed to create object relationship")
	}

	if relationship.RelationshipTypeID != nil {
		converse := ConverseOf(*relationship.RelationshipTypeID)
		if converse > 0 {
			var exists bool
			err = tx.GetContext(ctx, &exists,
				`select exists (select 1 from mdr.object_relationships
					where sd_oid = $1 and relationship_type_id = $2 and target_sd_oid = $3)`,
				relationship.TargetSdOid, converse, relationship.SdOid)
			if err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("failed converse existence check")
				return nil, ServerError("failed to create object relationship")
			}
			if !exists {
				cib := database.NewInsertBuilder()
				cib.InsertInto(objectRelationshipsTable).
					Cols("sd_oid", "relationship_type_id", "target_sd_oid", "last_edited_by").
					Values(relationship.TargetSdOid, converse, relationship.SdOid, editor)
				cquery, cargs := cib.Build()
				if _, err = tx.ExecContext(ctx, cquery, cargs...); err != nil {
					r.logger.WithContext(ctx).WithError(err).Error("failed to create converse relationship")
					return nil, ServerError("failed to create object relationship")
				}
			}
		}
	}

	if err = tx.Commit(outerCtx); err != nil {
		return nil, ServerError("failed to create object relationship")
	}
	return r.GetObjectRelationship(outerCtx, id)
}

// UpdateObjectRelationship rewrites an edge and keeps its converse in
// step: the reverse edge matching the old converse type is retyped before
// the original edge is rewritten.
func (r *ObjectRepository) UpdateObjectRelationship(ctx context.Context, relationship *models.ObjectRelationship) (*models.ObjectRelationship, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectRelationship")
	defer span.End()

	current, err := r.GetObjectRelationship(ctx, relationship.ID)
	if err != nil {
		return nil, err
	}

	editor := EditorName(ctx)
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return nil, ServerError("failed to update object relationship")
	}
	defer database.CloseTx(outerCtx, tx)

	if current.RelationshipTypeID != nil && relationship.RelationshipTypeID != nil {
		oldConverse := ConverseOf(*current.RelationshipTypeID)
		newConverse := ConverseOf(*relationship.RelationshipTypeID)
		if oldConverse > 0 && newConverse > 0 {
			_, err = tx.ExecContext(ctx,
				`update mdr.object_relationships
					set relationship_type_id = $1, last_edited_by = $2
					where sd_oid = $3 and relationship_type_id = $4 and target_sd_oid = $5`,
				newConverse, editor, current.TargetSdOid, oldConverse, current.SdOid)
			if err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("failed to retype converse relationship")
				return nil, ServerError("failed to update object relationship")
			}
		}
	}

	ub := database.NewUpdateBuilder()
	ub.Update(objectRelationshipsTable).
		Set(
			ub.Assign("relationship_type_id", relationship.RelationshipTypeID),
			ub.Assign("target_sd_oid", relationship.TargetSdOid),
			ub.Assign("last_edited_by", editor),
		).
		Where(ub.Equal("id", relationship.ID))

	query, args := ub.Build()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object relationship")
		return nil, ServerError("failed to update object relationship")
	}

	if err = tx.Commit(outerCtx); err != nil {
		return nil, ServerError("failed to update object relationship")
	}
	return r.GetObjectRelationship(outerCtx, relationship.ID)
}

// DeleteObjectRelationship removes an edge together with its converse.
// Returns the number of edges removed for the requested id, zero when it
// was already gone.
func (r *ObjectRepository) DeleteObjectRelationship(ctx context.Context, id int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.DeleteObjectRelationship")
	defer span.End()

	current, err := r.GetObjectRelationship(ctx, id)
	if err != nil {
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusNotFound {
			return 0, nil
		}
		return 0, err
	}

	editor := EditorName(ctx)
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete object relationship")
	}
	defer database.CloseTx(outerCtx, tx)

	if current.RelationshipTypeID != nil {
		converse := ConverseOf(*current.RelationshipTypeID)
		if converse > 0 {
			_, err = tx.ExecContext(ctx,
				`update mdr.object_relationships set last_edited_by = $1
					where sd_oid = $2 and relationship_type_id = $3 and target_sd_oid = $4`,
				editor, current.TargetSdOid, converse, current.SdOid)
			if err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("failed to audit converse delete")
				return 0, ServerError("failed to delete object relationship")
			}
			_, err = tx.ExecContext(ctx,
				`delete from mdr.object_relationships
					where sd_oid = $1 and relationship_type_id = $2 and target_sd_oid = $3`,
				current.TargetSdOid, converse, current.SdOid)
			if err != nil {
				r.logger.WithContext(ctx).WithError(err).Error("failed to delete converse relationship")
				return 0, ServerError("failed to delete object relationship")
			}
		}
	}

	count, err := r.auditedDelete(ctx, tx, objectRelationshipsTable, "id", id)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete object relationship")
	}
	return count, nil
}
