package tagginghdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	taggingdto "meta_learning/internal/api/tagging/dto"
	taggingmodels "meta_learning/internal/api/tagging/models"
	taggingsvc "meta_learning/internal/api/tagging/service"
	"meta_learning/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// TagHandler xử lý các request liên quan đến tag trong taxonomy
type TagHandler struct {
	*basehdl.BaseHandler[taggingmodels.Tag, taggingdto.TagCreateInput, taggingdto.TagUpdateInput]
	TagService *taggingsvc.TagService
}

// NewTagHandler tạo mới TagHandler
func NewTagHandler() (*TagHandler, error) {
	tagService, err := taggingsvc.NewTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %v", err)
	}
	hdl := &TagHandler{
		TagService: tagService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[taggingmodels.Tag, taggingdto.TagCreateInput, taggingdto.TagUpdateInput](tagService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// GetByTaxonomy lấy tất cả tag của một taxonomy, sắp theo value
func (h *TagHandler) GetByTaxonomy(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params taggingdto.TaxonomyIDParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		taxonomyID := utility.String2ObjectID(params.ID)
		tags, err := h.TagService.GetTagsByTaxonomy(c.Context(), taxonomyID)
		h.HandleResponse(c, tags, err)
		return nil
	})
}
