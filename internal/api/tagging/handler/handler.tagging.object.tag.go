package tagginghdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	taggingdto "meta_learning/internal/api/tagging/dto"
	taggingmodels "meta_learning/internal/api/tagging/models"
	taggingsvc "meta_learning/internal/api/tagging/service"
	"meta_learning/internal/common"
	"meta_learning/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ObjectTagHandler xử lý các request gắn tag lên object
type ObjectTagHandler struct {
	*basehdl.BaseHandler[taggingmodels.ObjectTag, taggingdto.ObjectTagApplyInput, taggingdto.ObjectTagApplyInput]
	ObjectTagService *taggingsvc.ObjectTagService
}

// NewObjectTagHandler tạo mới ObjectTagHandler
func NewObjectTagHandler() (*ObjectTagHandler, error) {
	objectTagService, err := taggingsvc.NewObjectTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create object tag service: %v", err)
	}
	hdl := &ObjectTagHandler{
		ObjectTagService: objectTagService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[taggingmodels.ObjectTag, taggingdto.ObjectTagApplyInput, taggingdto.ObjectTagApplyInput](objectTagService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// Apply gắn các giá trị tag của một taxonomy lên object (replace-per-taxonomy).
// Tổ chức sở hữu object được resolve từ chính object — taxonomy có phạm vi
// không bao gồm tổ chức đó sẽ bị từ chối.
func (h *ObjectTagHandler) Apply(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input taggingdto.ObjectTagApplyInput
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

		objectID := utility.String2ObjectID(input.ObjectID)
		taxonomyID := utility.String2ObjectID(input.TaxonomyID)

		objectOrgID, err := h.ObjectTagService.ResolveObjectOrg(c.Context(), input.ObjectType, objectID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateUserHasAccessToOrg(c, objectOrgID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		tags, err := h.ObjectTagService.TagObject(c.Context(), taxonomyID, input.ObjectType, objectID, objectOrgID, input.Values)
		h.HandleResponse(c, tags, err)
		return nil
	})
}

// GetForObject lấy tất cả tag của một object
func (h *ObjectTagHandler) GetForObject(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params taggingdto.ObjectTagListParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		objectID := utility.String2ObjectID(params.ObjectID)
		tags, err := h.ObjectTagService.GetObjectTags(c.Context(), params.ObjectType, objectID)
		h.HandleResponse(c, tags, err)
		return nil
	})
}
