package taggingsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	contentsvc "meta_learning/internal/api/content/service"
	taggingmodels "meta_learning/internal/api/tagging/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ObjectTagService là service gắn tag lên object (khóa học, block, ...)
type ObjectTagService struct {
	*basesvc.BaseServiceMongoImpl[taggingmodels.ObjectTag]
	TaxonomyService *TaxonomyService
	TagService      *TagService
}

// NewObjectTagService tạo mới ObjectTagService
func NewObjectTagService() (*ObjectTagService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ObjectTags)
	if !exist {
		return nil, fmt.Errorf("failed to get object_tags collection: %v", common.ErrNotFound)
	}
	taxonomyService, err := NewTaxonomyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create taxonomy service: %v", err)
	}
	tagService, err := NewTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %v", err)
	}
	return &ObjectTagService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[taggingmodels.ObjectTag](collection),
		TaxonomyService:      taxonomyService,
		TagService:           tagService,
	}, nil
}

// TagObject gắn các giá trị tag của một taxonomy lên object, thay thế toàn bộ
// tag cũ của object trong taxonomy đó (replace-per-taxonomy).
//
// Từ chối khi:
//   - taxonomy không tồn tại hoặc đã tắt
//   - phạm vi tổ chức của taxonomy không bao gồm tổ chức sở hữu object
//   - gắn nhiều giá trị khi taxonomy không cho phép allowMultiple
//   - giá trị ngoài từ vựng khi taxonomy không cho phép allowFreeText
//
// values rỗng nghĩa là gỡ toàn bộ tag của object trong taxonomy.
func (s *ObjectTagService) TagObject(ctx context.Context, taxonomyID primitive.ObjectID, objectType string, objectID primitive.ObjectID, objectOrgID primitive.ObjectID, values []string) ([]taggingmodels.ObjectTag, error) {
	taxonomy, err := s.TaxonomyService.FindOneById(ctx, taxonomyID)
	if err != nil {
		return nil, err
	}
	if !taxonomy.Enabled {
		return nil, common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("Taxonomy '%s' đang tắt, không thể gắn tag", taxonomy.Name),
			common.StatusBadRequest,
			nil,
		)
	}
	if !TaxonomyAppliesToOrg(taxonomy, objectOrgID) {
		return nil, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Taxonomy '%s' không áp dụng cho tổ chức sở hữu object", taxonomy.Name),
			common.StatusForbidden,
			nil,
		)
	}
	if !taxonomy.AllowMultiple && len(values) > 1 {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Taxonomy '%s' chỉ cho phép một giá trị tag trên mỗi object", taxonomy.Name),
			common.StatusBadRequest,
			nil,
		)
	}

	// Resolve giá trị → tag trong từ vựng (hoặc free text nếu taxonomy cho phép)
	newTags := make([]taggingmodels.ObjectTag, 0, len(values))
	for _, value := range values {
		objectTag := taggingmodels.ObjectTag{
			ObjectType:          objectType,
			ObjectID:            objectID,
			TaxonomyID:          taxonomy.ID,
			Value:               value,
			OwnerOrganizationID: objectOrgID,
		}
		tag, err := s.TagService.FindByValue(ctx, taxonomy.ID, value)
		if err == nil {
			objectTag.TagID = &tag.ID
			objectTag.Value = tag.Value
		} else if err != common.ErrNotFound {
			return nil, err
		} else if !taxonomy.AllowFreeText {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Giá trị '%s' không có trong từ vựng của taxonomy '%s'", value, taxonomy.Name),
				common.StatusBadRequest,
				nil,
			)
		}
		newTags = append(newTags, objectTag)
	}

	// Replace-per-taxonomy: xóa tag cũ của object trong taxonomy rồi ghi tag mới
	deleteFilter := bson.M{"objectType": objectType, "objectId": objectID, "taxonomyId": taxonomy.ID}
	if _, err := s.DeleteMany(ctx, deleteFilter); err != nil && err != common.ErrNotFound {
		return nil, err
	}
	if len(newTags) == 0 {
		return []taggingmodels.ObjectTag{}, nil
	}
	return s.InsertMany(ctx, newTags)
}

// ResolveObjectOrg tìm tổ chức sở hữu một object theo loại của nó.
// Dùng để enforce phạm vi tổ chức của taxonomy — org lấy từ chính object,
// không nhận từ client.
func (s *ObjectTagService) ResolveObjectOrg(ctx context.Context, objectType string, objectID primitive.ObjectID) (primitive.ObjectID, error) {
	switch objectType {
	case taggingmodels.ObjectTypeCourse:
		svc, err := contentsvc.NewCourseService()
		if err != nil {
			return primitive.NilObjectID, err
		}
		course, err := svc.FindOneById(ctx, objectID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return course.OwnerOrganizationID, nil
	case taggingmodels.ObjectTypeCourseBlock:
		svc, err := contentsvc.NewCourseBlockService()
		if err != nil {
			return primitive.NilObjectID, err
		}
		block, err := svc.FindOneById(ctx, objectID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return block.OwnerOrganizationID, nil
	case taggingmodels.ObjectTypeLibraryBlock:
		svc, err := contentsvc.NewLibraryBlockService()
		if err != nil {
			return primitive.NilObjectID, err
		}
		block, err := svc.FindOneById(ctx, objectID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return block.OwnerOrganizationID, nil
	default:
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Loại object không hỗ trợ gắn tag: %s", objectType),
			common.StatusBadRequest,
			nil,
		)
	}
}

// GetObjectTags lấy tất cả tag của một object, sắp theo taxonomy rồi đến value
func (s *ObjectTagService) GetObjectTags(ctx context.Context, objectType string, objectID primitive.ObjectID) ([]taggingmodels.ObjectTag, error) {
	filter := map[string]interface{}{"objectType": objectType, "objectId": objectID}
	opts := options.Find().SetSort(bson.D{{Key: "taxonomyId", Value: 1}, {Key: "value", Value: 1}})
	return s.Find(ctx, filter, opts)
}
