// Package contentsvc - Service cho domain Content: khóa học, block, asset, thư viện, enrollment.
package contentsvc

import (
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	contentmodels "meta_learning/internal/api/content/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
)

// CourseService là service quản lý khóa học
type CourseService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.Course]
}

// NewCourseService tạo mới CourseService
func NewCourseService() (*CourseService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Courses)
	if !exist {
		return nil, fmt.Errorf("failed to get courses collection: %v", common.ErrNotFound)
	}
	return &CourseService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.Course](collection),
	}, nil
}
