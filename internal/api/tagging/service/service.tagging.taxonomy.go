// Package taggingsvc - Service cho domain Tagging: taxonomy, tag, object tag.
package taggingsvc

import (
	"context"
	"fmt"

	basesvc "meta_learning/internal/api/base/service"
	taggingmodels "meta_learning/internal/api/tagging/models"
	"meta_learning/internal/common"
	"meta_learning/internal/global"
	"meta_learning/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LanguageTaxonomyName là tên taxonomy hệ thống dùng cho auto language tagging
const LanguageTaxonomyName = "Language"

// TaxonomyService là service quản lý taxonomy
type TaxonomyService struct {
	*basesvc.BaseServiceMongoImpl[taggingmodels.Taxonomy]
}

// NewTaxonomyService tạo mới TaxonomyService
func NewTaxonomyService() (*TaxonomyService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Taxonomies)
	if !exist {
		return nil, fmt.Errorf("failed to get taxonomies collection: %v", common.ErrNotFound)
	}
	return &TaxonomyService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[taggingmodels.Taxonomy](collection),
	}, nil
}

// TaxonomyAppliesToOrg kiểm tra một tổ chức có được phép dùng taxonomy này không.
// noOrgs không bao giờ áp dụng cho bất kỳ tổ chức nào.
func TaxonomyAppliesToOrg(taxonomy taggingmodels.Taxonomy, orgID primitive.ObjectID) bool {
	switch taxonomy.OrgScope {
	case taggingmodels.OrgScopeAllOrgs:
		return true
	case taggingmodels.OrgScopeListedOrgs:
		return utility.Contains(taxonomy.OrgIDs, orgID)
	default:
		// noOrgs hoặc giá trị không hợp lệ
		return false
	}
}

// SetOrgs cập nhật phạm vi tổ chức của một taxonomy.
// listedOrgs yêu cầu danh sách orgIds không rỗng; các scope khác xóa orgIds.
func (s *TaxonomyService) SetOrgs(ctx context.Context, taxonomyID primitive.ObjectID, orgScope string, orgIDs []primitive.ObjectID) (taggingmodels.Taxonomy, error) {
	var zero taggingmodels.Taxonomy

	switch orgScope {
	case taggingmodels.OrgScopeAllOrgs, taggingmodels.OrgScopeNoOrgs:
		orgIDs = nil
	case taggingmodels.OrgScopeListedOrgs:
		if len(orgIDs) == 0 {
			return zero, common.NewError(
				common.ErrCodeValidationInput,
				"orgScope listedOrgs yêu cầu danh sách orgIds không rỗng",
				common.StatusBadRequest,
				nil,
			)
		}
	default:
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("orgScope không hợp lệ: %s", orgScope),
			common.StatusBadRequest,
			nil,
		)
	}

	update := bson.M{"$set": bson.M{
		"orgScope":  orgScope,
		"orgIds":    orgIDs,
		"updatedAt": utility.CurrentTimeInMilli(),
	}}
	return s.UpdateOne(ctx, bson.M{"_id": taxonomyID}, update, nil)
}

// GetTaxonomiesForOrg lấy các taxonomy mà một tổ chức được phép dùng, sắp theo tên.
// Taxonomy noOrgs không bao giờ xuất hiện trong kết quả.
// enabledOnly = true chỉ trả về taxonomy đang hoạt động.
func (s *TaxonomyService) GetTaxonomiesForOrg(ctx context.Context, orgID primitive.ObjectID, enabledOnly bool) ([]taggingmodels.Taxonomy, error) {
	filter := bson.M{"$or": []bson.M{
		{"orgScope": taggingmodels.OrgScopeAllOrgs},
		{"orgScope": taggingmodels.OrgScopeListedOrgs, "orgIds": orgID},
	}}
	if enabledOnly {
		filter["enabled"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// GetLanguageTaxonomy lấy taxonomy hệ thống Language (dùng cho auto tagging)
func (s *TaxonomyService) GetLanguageTaxonomy(ctx context.Context) (taggingmodels.Taxonomy, error) {
	filter := map[string]interface{}{"name": LanguageTaxonomyName, "systemDefined": true}
	return s.FindOne(ctx, filter, nil)
}
