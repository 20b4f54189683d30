package taggingsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	taggingmodels "meta_learning/internal/api/tagging/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TagService là service quản lý tag trong taxonomy
type TagService struct {
	*basesvc.BaseServiceMongoImpl[taggingmodels.Tag]
}

// NewTagService tạo mới TagService
func NewTagService() (*TagService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tags)
	if !exist {
		return nil, fmt.Errorf("failed to get tags collection: %v", common.ErrNotFound)
	}
	return &TagService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[taggingmodels.Tag](collection),
	}, nil
}

// GetTagsByTaxonomy lấy tất cả tag của một taxonomy, sắp theo value
func (s *TagService) GetTagsByTaxonomy(ctx context.Context, taxonomyID primitive.ObjectID) ([]taggingmodels.Tag, error) {
	filter := map[string]interface{}{"taxonomyId": taxonomyID}
	opts := options.Find().SetSort(bson.D{{Key: "value", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// FindByValue tìm tag theo value trong một taxonomy
func (s *TagService) FindByValue(ctx context.Context, taxonomyID primitive.ObjectID, value string) (taggingmodels.Tag, error) {
	filter := map[string]interface{}{"taxonomyId": taxonomyID, "value": value}
	return s.FindOne(ctx, filter, nil)
}

// FindByExternalID tìm tag theo externalId trong một taxonomy
// (vd: mã ngôn ngữ "en" cho taxonomy Language).
func (s *TagService) FindByExternalID(ctx context.Context, taxonomyID primitive.ObjectID, externalID string) (taggingmodels.Tag, error) {
	filter := map[string]interface{}{"taxonomyId": taxonomyID, "externalId": externalID}
	return s.FindOne(ctx, filter, nil)
}
