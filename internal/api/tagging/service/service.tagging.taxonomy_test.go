// Package taggingsvc - Test kiểm tra phạm vi tổ chức của taxonomy.
package taggingsvc

import (
	"testing"

	taggingmodels "meta_learning/internal/api/tagging/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaxonomyAppliesToOrg_AllOrgs(t *testing.T) {
	taxonomy := taggingmodels.Taxonomy{OrgScope: taggingmodels.OrgScopeAllOrgs}
	if !TaxonomyAppliesToOrg(taxonomy, primitive.NewObjectID()) {
		t.Error("allOrgs phải áp dụng cho mọi tổ chức")
	}
}

func TestTaxonomyAppliesToOrg_ListedOrgs(t *testing.T) {
	orgA := primitive.NewObjectID()
	orgB := primitive.NewObjectID()
	taxonomy := taggingmodels.Taxonomy{
		OrgScope: taggingmodels.OrgScopeListedOrgs,
		OrgIDs:   []primitive.ObjectID{orgA},
	}
	if !TaxonomyAppliesToOrg(taxonomy, orgA) {
		t.Error("listedOrgs phải áp dụng cho tổ chức có trong danh sách")
	}
	if TaxonomyAppliesToOrg(taxonomy, orgB) {
		t.Error("listedOrgs không được áp dụng cho tổ chức ngoài danh sách")
	}
}

func TestTaxonomyAppliesToOrg_NoOrgsKhongBaoGioApDung(t *testing.T) {
	orgA := primitive.NewObjectID()
	// noOrgs không áp dụng kể cả khi orgIds còn sót dữ liệu cũ
	taxonomy := taggingmodels.Taxonomy{
		OrgScope: taggingmodels.OrgScopeNoOrgs,
		OrgIDs:   []primitive.ObjectID{orgA},
	}
	if TaxonomyAppliesToOrg(taxonomy, orgA) {
		t.Error("noOrgs không bao giờ được áp dụng cho bất kỳ tổ chức nào")
	}
}

func TestTaxonomyAppliesToOrg_ScopeKhongHopLe(t *testing.T) {
	taxonomy := taggingmodels.Taxonomy{OrgScope: "somethingElse"}
	if TaxonomyAppliesToOrg(taxonomy, primitive.NewObjectID()) {
		t.Error("orgScope không hợp lệ phải bị coi như không áp dụng")
	}
}
