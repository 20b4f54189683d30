package notifhdl

import (
	"errors"
	"testing"

	"meta_learning/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseOptionalNotificationID_HexHopLe(t *testing.T) {
	muon := primitive.NewObjectID()
	got, err := parseOptionalNotificationID(muon.Hex())
	if err != nil {
		t.Fatalf("Hex hợp lệ không được lỗi: %v", err)
	}
	if got == nil || *got != muon {
		t.Errorf("ObjectID sai: muốn %s, có %v", muon.Hex(), got)
	}
}

func TestParseOptionalNotificationID_RongTraVeNil(t *testing.T) {
	got, err := parseOptionalNotificationID("")
	if err != nil {
		t.Fatalf("Chuỗi rỗng không được lỗi: %v", err)
	}
	if got != nil {
		t.Errorf("Chuỗi rỗng phải trả về nil, có %v", got)
	}
}

func TestParseOptionalNotificationID_SaiDinhDangTraVeLoiValidation(t *testing.T) {
	got, err := parseOptionalNotificationID("khong-phai-hex")
	if err == nil {
		t.Fatal("Hex sai định dạng phải trả về lỗi validation")
	}
	if got != nil {
		t.Errorf("Hex sai định dạng không được trả về ID, có %v", got)
	}
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("Lỗi phải là *common.Error, có %T", err)
	}
	if customErr.StatusCode != common.StatusBadRequest {
		t.Errorf("Status code sai: muốn %d, có %d", common.StatusBadRequest, customErr.StatusCode)
	}
}
