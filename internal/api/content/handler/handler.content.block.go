package contenthdl

import (
	"context"
	"fmt"

	authsvc "meta_learning/internal/api/auth/service"
	basehdl "meta_learning/internal/api/base/handler"
	contentdto "meta_learning/internal/api/content/dto"
	contentmodels "meta_learning/internal/api/content/models"
	contentsvc "meta_learning/internal/api/content/service"
	"meta_learning/internal/common"
	"meta_learning/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseBlockHandler xử lý các request liên quan đến cây block nội dung
type CourseBlockHandler struct {
	*basehdl.BaseHandler[contentmodels.CourseBlock, contentdto.CourseBlockCreateInput, contentdto.CourseBlockUpdateInput]
	CourseBlockService *contentsvc.CourseBlockService
}

// NewCourseBlockHandler tạo mới CourseBlockHandler
func NewCourseBlockHandler() (*CourseBlockHandler, error) {
	blockService, err := contentsvc.NewCourseBlockService()
	if err != nil {
		return nil, fmt.Errorf("failed to create course block service: %v", err)
	}
	hdl := &CourseBlockHandler{
		CourseBlockService: blockService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.CourseBlock, contentdto.CourseBlockCreateInput, contentdto.CourseBlockUpdateInput](blockService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne thêm mới một block nội dung.
// Khác với CRUD mặc định: position do server gán — block mới luôn append vào cuối
// danh sách sibling (max position + 1), không bao giờ chen giữa các block hiện có.
func (h *CourseBlockHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input contentdto.CourseBlockCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Lỗi transform dữ liệu: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		ownerOrgIDFromRequest := h.GetOwnerOrganizationIDFromModel(model)
		if ownerOrgIDFromRequest != nil && !ownerOrgIDFromRequest.IsZero() {
			if err := h.ValidateUserHasAccessToOrg(c, *ownerOrgIDFromRequest); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		} else {
			activeOrgID := h.GetActiveOrganizationID(c)
			if activeOrgID != nil && !activeOrgID.IsZero() {
				h.SetOrganizationID(model, *activeOrgID)
			}
		}

		var ctx context.Context = c.Context()
		if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
			if userID, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
				ctx = authsvc.SetUserIDToContext(ctx, userID)
			}
		}

		// Kiểm tra ràng buộc phân cấp: chapter → sequential → vertical → leaf
		parentType := ""
		parentExists := false
		if model.ParentID != nil {
			parent, err := h.CourseBlockService.FindOneById(ctx, *model.ParentID)
			if err != nil && err != common.ErrNotFound {
				h.HandleResponse(c, nil, err)
				return nil
			}
			if err == nil {
				parentExists = true
				parentType = parent.BlockType
			}
		}
		if err := utility.ValidateBlockHierarchy(model.BlockType, parentType, parentExists); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Append vào cuối danh sách sibling
		position, err := h.CourseBlockService.NextPosition(ctx, model.CourseID, model.ParentID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		model.Position = position

		data, err := h.CourseBlockService.InsertOne(ctx, *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetChildren lấy các block con trực tiếp của một block, sắp theo position tăng dần
func (h *CourseBlockHandler) GetChildren(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params contentdto.CourseBlockChildrenParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id := params.ID

		if err := h.ValidateOrganizationAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		blockID := utility.String2ObjectID(id)
		block, err := h.CourseBlockService.FindOneById(c.Context(), blockID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		children, err := h.CourseBlockService.GetChildren(c.Context(), block.CourseID, &block.ID)
		h.HandleResponse(c, children, err)
		return nil
	})
}

// GetTree lấy cây block nội dung từ một block root (recursive)
func (h *CourseBlockHandler) GetTree(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params contentdto.CourseBlockTreeParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id := params.ID

		if err := h.ValidateOrganizationAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		rootID := utility.String2ObjectID(id)
		root, err := h.CourseBlockService.FindOneById(c.Context(), rootID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tree := h.buildTree(c.Context(), root)
		h.HandleResponse(c, tree, nil)
		return nil
	})
}

func (h *CourseBlockHandler) buildTree(ctx context.Context, block contentmodels.CourseBlock) map[string]interface{} {
	result := map[string]interface{}{
		"id": block.ID, "blockType": block.BlockType, "displayName": block.DisplayName,
		"position": block.Position, "definition": block.Definition,
		"copiedFromBlockId": block.CopiedFromBlockID, "sourceLibraryBlockId": block.SourceLibraryBlockID,
		"createdAt": block.CreatedAt, "updatedAt": block.UpdatedAt,
	}
	children, err := h.CourseBlockService.GetChildren(ctx, block.CourseID, &block.ID)
	if err == nil && len(children) > 0 {
		childrenTree := make([]map[string]interface{}, 0, len(children))
		for _, child := range children {
			childrenTree = append(childrenTree, h.buildTree(ctx, child))
		}
		result["children"] = childrenTree
	} else {
		result["children"] = []interface{}{}
	}
	return result
}
