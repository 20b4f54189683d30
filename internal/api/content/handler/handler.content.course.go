// Package contenthdl - Handler cho domain Content: khóa học, block, asset, thư viện, enrollment.
package contenthdl

import (
	"fmt"

	basehdl "meta_learning/internal/api/base/handler"
	contentdto "meta_learning/internal/api/content/dto"
	contentmodels "meta_learning/internal/api/content/models"
	contentsvc "meta_learning/internal/api/content/service"
)

// CourseHandler xử lý các request liên quan đến khóa học
type CourseHandler struct {
	*basehdl.BaseHandler[contentmodels.Course, contentdto.CourseCreateInput, contentdto.CourseUpdateInput]
	CourseService *contentsvc.CourseService
}

// NewCourseHandler tạo mới CourseHandler
func NewCourseHandler() (*CourseHandler, error) {
	courseService, err := contentsvc.NewCourseService()
	if err != nil {
		return nil, fmt.Errorf("failed to create course service: %v", err)
	}
	hdl := &CourseHandler{
		CourseService: courseService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.Course, contentdto.CourseCreateInput, contentdto.CourseUpdateInput](courseService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
