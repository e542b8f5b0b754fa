package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"assetdesk/internal/domain/organization"
	"assetdesk/internal/infrastructure/persistence/models"
	"assetdesk/internal/shared/db"
)

// DepartmentRepository maintains the closure-table organization tree.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func departmentToDomain(m *models.DepartmentMetaModel) *organization.Department {
	return &organization.Department{ID: m.ID, Name: m.Name, IsGlobal: m.IsGlobal}
}

func (r *DepartmentRepository) AddNode(ctx context.Context, name string, isGlobal bool, parentID *uint) (*organization.Department, error) {
	var created *organization.Department
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Transaction(func(tx *gorm.DB) error {
		meta := &models.DepartmentMetaModel{Name: name, IsGlobal: isGlobal}
		if err := tx.Create(meta).Error; err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}

		// Self relation at depth zero, then one row per ancestor of the
		// parent with depth bumped by one.
		relations := []models.DepartmentRelationModel{
			{Ancestor: ptr(meta.ID), Descendant: meta.ID, Depth: 0},
		}
		if parentID != nil {
			var ancestors []models.DepartmentRelationModel
			if err := tx.Where("descendant = ?", *parentID).Find(&ancestors).Error; err != nil {
				return fmt.Errorf("failed to load ancestor relations: %w", err)
			}
			if len(ancestors) == 0 {
				return fmt.Errorf("parent department not found")
			}
			for _, a := range ancestors {
				relations = append(relations, models.DepartmentRelationModel{
					Ancestor:   a.Ancestor,
					Descendant: meta.ID,
					Depth:      a.Depth + 1,
				})
			}
		}
		if err := tx.Create(&relations).Error; err != nil {
			return fmt.Errorf("failed to create closure rows: %w", err)
		}

		created = departmentToDomain(meta)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *DepartmentRepository) RemoveSubtree(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	return tx.Transaction(func(tx *gorm.DB) error {
		var descendants []uint
		if err := tx.Model(&models.DepartmentRelationModel{}).
			Where("ancestor = ?", id).
			Pluck("descendant", &descendants).Error; err != nil {
			return fmt.Errorf("failed to load subtree: %w", err)
		}
		if len(descendants) == 0 {
			return fmt.Errorf("department not found")
		}

		if err := tx.Where("descendant IN ?", descendants).
			Delete(&models.DepartmentRelationModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete closure rows: %w", err)
		}
		if err := tx.Where("id IN ?", descendants).
			Delete(&models.DepartmentMetaModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete departments: %w", err)
		}
		if err := tx.Where("did IN ?", descendants).
			Delete(&models.DepartmentContactModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete department contacts: %w", err)
		}
		return nil
	})
}

func (r *DepartmentRepository) Rename(ctx context.Context, id uint, name string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.DepartmentMetaModel{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to rename department: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("department not found")
	}
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*organization.Department, error) {
	var model models.DepartmentMetaModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("department not found")
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return departmentToDomain(&model), nil
}

func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*organization.Department, error) {
	var model models.DepartmentMetaModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("department not found")
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	return departmentToDomain(&model), nil
}

func (r *DepartmentRepository) Subtree(ctx context.Context, rootID uint) (*organization.Node, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var relations []models.DepartmentRelationModel
	if err := tx.Where("ancestor = ?", rootID).Find(&relations).Error; err != nil {
		return nil, fmt.Errorf("failed to load subtree relations: %w", err)
	}
	if len(relations) == 0 {
		return nil, fmt.Errorf("department not found")
	}

	ids := make([]uint, 0, len(relations))
	for _, rel := range relations {
		ids = append(ids, rel.Descendant)
	}
	var metas []models.DepartmentMetaModel
	if err := tx.Where("id IN ?", ids).Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("failed to load subtree departments: %w", err)
	}

	nodes := make(map[uint]*organization.Node, len(metas))
	for _, m := range metas {
		nodes[m.ID] = &organization.Node{ID: m.ID, Name: m.Name, IsGlobal: m.IsGlobal}
	}

	// Parents are the depth-1 relations among subtree members.
	var parentRels []models.DepartmentRelationModel
	if err := tx.Where("descendant IN ? AND depth = ?", ids, 1).Find(&parentRels).Error; err != nil {
		return nil, fmt.Errorf("failed to load parent relations: %w", err)
	}
	for _, rel := range parentRels {
		if rel.Ancestor == nil {
			continue
		}
		parent, ok := nodes[*rel.Ancestor]
		child, okc := nodes[rel.Descendant]
		if ok && okc {
			parent.Children = append(parent.Children, child)
		}
	}
	for _, n := range nodes {
		sort.Slice(n.Children, func(i, j int) bool { return n.Children[i].ID < n.Children[j].ID })
	}

	root, ok := nodes[rootID]
	if !ok {
		return nil, fmt.Errorf("department not found")
	}
	return root, nil
}

func (r *DepartmentRepository) Roots(ctx context.Context) ([]*organization.Department, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	// A root has no relation placing it under anyone else.
	var rootIDs []uint
	if err := tx.Model(&models.DepartmentRelationModel{}).
		Select("descendant").
		Group("descendant").
		Having("MAX(depth) = 0").
		Pluck("descendant", &rootIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to find root departments: %w", err)
	}
	if len(rootIDs) == 0 {
		return nil, nil
	}

	var metas []models.DepartmentMetaModel
	if err := tx.Where("id IN ?", rootIDs).Order("id ASC").Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("failed to load root departments: %w", err)
	}

	roots := make([]*organization.Department, 0, len(metas))
	for i := range metas {
		roots = append(roots, departmentToDomain(&metas[i]))
	}
	return roots, nil
}

func (r *DepartmentRepository) DescendantNames(ctx context.Context, id uint) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var names []string
	if err := tx.Model(&models.DepartmentMetaModel{}).
		Joins("JOIN department_relation ON department_relation.descendant = department_meta.id").
		Where("department_relation.ancestor = ?", id).
		Pluck("department_meta.name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list descendant names: %w", err)
	}
	return names, nil
}

func (r *DepartmentRepository) GetContact(ctx context.Context, did uint) (*organization.Contact, error) {
	var model models.DepartmentContactModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("did = ?", did).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("department contact not found")
		}
		return nil, fmt.Errorf("failed to find department contact: %w", err)
	}
	return &organization.Contact{ID: model.ID, DID: model.DID, PID: model.PID}, nil
}

func (r *DepartmentRepository) SetContact(ctx context.Context, did uint, pid *uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing models.DepartmentContactModel
	err := tx.Where("did = ?", did).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if createErr := tx.Create(&models.DepartmentContactModel{DID: did, PID: pid}).Error; createErr != nil {
			return fmt.Errorf("failed to create department contact: %w", createErr)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to find department contact: %w", err)
	}

	if updateErr := tx.Model(&models.DepartmentContactModel{}).
		Where("did = ?", did).
		Update("pid", pid).Error; updateErr != nil {
		return fmt.Errorf("failed to update department contact: %w", updateErr)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
