package handlers

import (
	"github.com/gin-gonic/gin"

	organizationusecases "assetdesk/internal/application/organization/usecases"
	"assetdesk/internal/domain/organization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// OrganizationHandler serves the department tree.
type OrganizationHandler struct {
	add        *organizationusecases.AddDepartmentUseCase
	remove     *organizationusecases.RemoveDepartmentUseCase
	rename     *organizationusecases.RenameDepartmentUseCase
	setContact *organizationusecases.SetContactUseCase
	tree       *organizationusecases.TreeUseCase
	getContact *organizationusecases.GetContactUseCase
	codec      *id.Codec
	logger     logger.Interface
}

func NewOrganizationHandler(
	add *organizationusecases.AddDepartmentUseCase,
	remove *organizationusecases.RemoveDepartmentUseCase,
	rename *organizationusecases.RenameDepartmentUseCase,
	setContact *organizationusecases.SetContactUseCase,
	tree *organizationusecases.TreeUseCase,
	getContact *organizationusecases.GetContactUseCase,
	codec *id.Codec,
	logger logger.Interface,
) *OrganizationHandler {
	return &OrganizationHandler{
		add:        add,
		remove:     remove,
		rename:     rename,
		setContact: setContact,
		tree:       tree,
		getContact: getContact,
		codec:      codec,
		logger:     logger.Named("organization-handler"),
	}
}

type addDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	IsGlobal bool   `json:"is_global"`
	ParentID string `json:"parent_id"`
}

func (h *OrganizationHandler) Add(c *gin.Context) {
	var req addDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	var parentID *uint
	if req.ParentID != "" {
		decoded, err := h.codec.Decode(req.ParentID)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid department id"))
			return
		}
		parentID = &decoded
	}

	dept, err := h.add.Execute(c.Request.Context(), organizationusecases.AddDepartmentCommand{
		Name:     req.Name,
		IsGlobal: req.IsGlobal,
		ParentID: parentID,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"id": h.codec.Encode(dept.ID), "name": dept.Name})
}

func (h *OrganizationHandler) Remove(c *gin.Context) {
	deptID, err := utils.ParseOpaqueQuery(c, h.codec, "id", "department")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), organizationusecases.RemoveDepartmentCommand{
		ID: deptID,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type renameDepartmentRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (h *OrganizationHandler) Rename(c *gin.Context) {
	var req renameDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	deptID, err := h.codec.Decode(req.ID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid department id"))
		return
	}

	if err := h.rename.Execute(c.Request.Context(), organizationusecases.RenameDepartmentCommand{
		ID:   deptID,
		Name: req.Name,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type setContactRequest struct {
	DepartmentID string `json:"department_id" binding:"required"`
	ProfileID    string `json:"profile_id"`
}

func (h *OrganizationHandler) SetContact(c *gin.Context) {
	var req setContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	deptID, err := h.codec.Decode(req.DepartmentID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid department id"))
		return
	}

	var profileID *uint
	if req.ProfileID != "" {
		decoded, err := h.codec.Decode(req.ProfileID)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid user id"))
			return
		}
		profileID = &decoded
	}

	if err := h.setContact.Execute(c.Request.Context(), organizationusecases.SetContactCommand{
		DepartmentID: deptID,
		ProfileID:    profileID,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type treeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	IsGlobal bool        `json:"is_global"`
	Children []*treeNode `json:"children"`
}

func (h *OrganizationHandler) toTreeNode(node *organization.Node) *treeNode {
	out := &treeNode{
		ID:       h.codec.Encode(node.ID),
		Name:     node.Name,
		IsGlobal: node.IsGlobal,
		Children: make([]*treeNode, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, h.toTreeNode(child))
	}
	return out
}

func (h *OrganizationHandler) Tree(c *gin.Context) {
	forest, err := h.tree.Execute(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	out := make([]*treeNode, 0, len(forest))
	for _, root := range forest {
		out = append(out, h.toTreeNode(root))
	}
	utils.OK(c, out)
}

func (h *OrganizationHandler) Contact(c *gin.Context) {
	deptID, err := utils.ParseOpaqueQuery(c, h.codec, "id", "department")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	result, err := h.getContact.Execute(c.Request.Context(), deptID)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var profileID *string
	if result.ProfileID != nil {
		encoded := h.codec.Encode(*result.ProfileID)
		profileID = &encoded
	}
	utils.OK(c, gin.H{
		"department": result.Department.Name,
		"profile_id": profileID,
	})
}
