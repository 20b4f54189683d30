package contenthdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	contentdto "meta_learning/internal/api/content/dto"
	contentmodels "meta_learning/internal/api/content/models"
	contentsvc "meta_learning/internal/api/content/service"
	"meta_learning/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ContentLibraryHandler xử lý các request liên quan đến thư viện nội dung
type ContentLibraryHandler struct {
	*basehdl.BaseHandler[contentmodels.ContentLibrary, contentdto.ContentLibraryCreateInput, contentdto.ContentLibraryUpdateInput]
	ContentLibraryService *contentsvc.ContentLibraryService
	LibraryBlockService   *contentsvc.LibraryBlockService
	CourseBlockService    *contentsvc.CourseBlockService
}

// NewContentLibraryHandler tạo mới ContentLibraryHandler
func NewContentLibraryHandler() (*ContentLibraryHandler, error) {
	libraryService, err := contentsvc.NewContentLibraryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create content library service: %v", err)
	}
	libraryBlockService, err := contentsvc.NewLibraryBlockService()
	if err != nil {
		return nil, fmt.Errorf("failed to create library block service: %v", err)
	}
	courseBlockService, err := contentsvc.NewCourseBlockService()
	if err != nil {
		return nil, fmt.Errorf("failed to create course block service: %v", err)
	}
	hdl := &ContentLibraryHandler{
		ContentLibraryService: libraryService,
		LibraryBlockService:   libraryBlockService,
		CourseBlockService:    courseBlockService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.ContentLibrary, contentdto.ContentLibraryCreateInput, contentdto.ContentLibraryUpdateInput](libraryService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// SyncCourse đồng bộ nội dung mới nhất của thư viện vào các block trong khóa học.
// Các block giữ nguyên ID và sourceLibraryBlockId — chỉ nội dung được cập nhật.
func (h *ContentLibraryHandler) SyncCourse(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params contentdto.LibrarySyncParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateOrganizationAccess(c, params.ID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		libraryID := utility.String2ObjectID(params.ID)
		courseID := utility.String2ObjectID(params.CourseID)

		synced, err := h.LibraryBlockService.SyncCourseBlocks(c.Context(), h.CourseBlockService, libraryID, courseID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, map[string]interface{}{"syncedBlocks": synced}, nil)
		return nil
	})
}

// LibraryBlockHandler xử lý các request liên quan đến block trong thư viện
type LibraryBlockHandler struct {
	*basehdl.BaseHandler[contentmodels.LibraryBlock, contentdto.LibraryBlockCreateInput, contentdto.LibraryBlockUpdateInput]
	LibraryBlockService *contentsvc.LibraryBlockService
}

// NewLibraryBlockHandler tạo mới LibraryBlockHandler
func NewLibraryBlockHandler() (*LibraryBlockHandler, error) {
	libraryBlockService, err := contentsvc.NewLibraryBlockService()
	if err != nil {
		return nil, fmt.Errorf("failed to create library block service: %v", err)
	}
	hdl := &LibraryBlockHandler{
		LibraryBlockService: libraryBlockService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.LibraryBlock, contentdto.LibraryBlockCreateInput, contentdto.LibraryBlockUpdateInput](libraryBlockService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
