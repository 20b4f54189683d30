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

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaticAssetHandler xử lý các request liên quan đến static asset
type StaticAssetHandler struct {
	*basehdl.BaseHandler[contentmodels.StaticAsset, contentdto.StaticAssetCreateInput, contentdto.StaticAssetUpdateInput]
	StaticAssetService *contentsvc.StaticAssetService
}

// NewStaticAssetHandler tạo mới StaticAssetHandler
func NewStaticAssetHandler() (*StaticAssetHandler, error) {
	assetService, err := contentsvc.NewStaticAssetService()
	if err != nil {
		return nil, fmt.Errorf("failed to create static asset service: %v", err)
	}
	hdl := &StaticAssetHandler{
		StaticAssetService: assetService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.StaticAsset, contentdto.StaticAssetCreateInput, contentdto.StaticAssetUpdateInput](assetService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash", "data"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne upload một static asset.
// Khác với CRUD mặc định: ContentHash (SHA-256) và Size do server tính từ nội dung file,
// không nhận từ client.
func (h *StaticAssetHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input contentdto.StaticAssetCreateInput
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
		model.ContentHash = contentsvc.HashContent(input.Data)
		model.Size = int64(len(input.Data))

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

		data, err := h.StaticAssetService.InsertOne(ctx, *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}
