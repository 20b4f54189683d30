// Package tagginghdl - Handler cho domain Tagging: taxonomy, tag, object tag.
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

// TaxonomyHandler xử lý các request liên quan đến taxonomy
type TaxonomyHandler struct {
	*basehdl.BaseHandler[taggingmodels.Taxonomy, taggingdto.TaxonomyCreateInput, taggingdto.TaxonomyUpdateInput]
	TaxonomyService *taggingsvc.TaxonomyService
}

// NewTaxonomyHandler tạo mới TaxonomyHandler
func NewTaxonomyHandler() (*TaxonomyHandler, error) {
	taxonomyService, err := taggingsvc.NewTaxonomyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create taxonomy service: %v", err)
	}
	hdl := &TaxonomyHandler{
		TaxonomyService: taxonomyService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[taggingmodels.Taxonomy, taggingdto.TaxonomyCreateInput, taggingdto.TaxonomyUpdateInput](taxonomyService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// SetOrgs đổi phạm vi tổ chức của một taxonomy (allOrgs / listedOrgs / noOrgs)
func (h *TaxonomyHandler) SetOrgs(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params taggingdto.TaxonomyIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input taggingdto.TaxonomySetOrgsInput
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

		if err := h.ValidateOrganizationAccess(c, params.ID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		taxonomyID := utility.String2ObjectID(params.ID)
		orgIDs := utility.StringArray2ObjectIDArray(input.OrgIDs)

		taxonomy, err := h.TaxonomyService.SetOrgs(c.Context(), taxonomyID, input.OrgScope, orgIDs)
		h.HandleResponse(c, taxonomy, err)
		return nil
	})
}

// GetForActiveOrg lấy các taxonomy mà tổ chức đang hoạt động được phép dùng.
// Taxonomy noOrgs không bao giờ xuất hiện trong kết quả.
// Query enabledOnly=true chỉ trả về taxonomy đang hoạt động.
func (h *TaxonomyHandler) GetForActiveOrg(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		activeOrgID := h.GetActiveOrganizationID(c)
		if activeOrgID == nil || activeOrgID.IsZero() {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole,
				"Không xác định được tổ chức đang hoạt động",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		enabledOnly := c.Query("enabledOnly", "false") == "true"
		taxonomies, err := h.TaxonomyService.GetTaxonomiesForOrg(c.Context(), *activeOrgID, enabledOnly)
		h.HandleResponse(c, taxonomies, err)
		return nil
	})
}
