package notifsvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMarkReadTarget_IDTuongMinhBoQuaAppFilter(t *testing.T) {
	userID := primitive.NewObjectID()
	notifID := primitive.NewObjectID()
	cutoff := int64(1_000_000)

	filter, byID := markReadTarget(userID, &notifID, "updates", cutoff)

	if !byID {
		t.Fatal("Có notificationId thì phải đánh dấu theo ID")
	}
	if filter["_id"] != notifID {
		t.Errorf("Filter _id sai: muốn %s, có %v", notifID.Hex(), filter["_id"])
	}
	if filter["userId"] != userID {
		t.Errorf("Filter phải kèm userId để xác nhận sở hữu, có %v", filter["userId"])
	}
	if _, ok := filter["appName"]; ok {
		t.Error("Có notificationId thì appName phải bị bỏ qua, không được vào filter")
	}
}

func TestMarkReadTarget_KhongCoIDLocTheoAppVaCuaSoRetention(t *testing.T) {
	userID := primitive.NewObjectID()
	cutoff := int64(1_000_000)

	filter, byID := markReadTarget(userID, nil, "grading", cutoff)

	if byID {
		t.Fatal("Không có notificationId thì phải đánh dấu hàng loạt")
	}
	if filter["appName"] != "grading" {
		t.Errorf("Filter appName sai: muốn grading, có %v", filter["appName"])
	}
	if filter["lastRead"] != nil {
		t.Errorf("Filter phải chỉ nhắm notification chưa đọc, có %v", filter["lastRead"])
	}
	created, ok := filter["createdAt"].(bson.M)
	if !ok || created["$gte"] != cutoff {
		t.Errorf("Filter createdAt phải giới hạn trong cửa sổ retention: có %v", filter["createdAt"])
	}
}

func TestRetentionCutoffFrom_Tru60Ngay(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	cutoff := retentionCutoffFrom(now, 60)
	muon := now.UnixMilli() - 60*millisPerDay
	if cutoff != muon {
		t.Errorf("Cutoff sai: muốn %d, có %d", muon, cutoff)
	}
}

func TestFeedFilter_LoaiNotificationCuHonCuaSoRetention(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.UnixMilli(1_700_000_000_000)
	cutoff := retentionCutoffFrom(now, 60)

	filter := feedFilter(userID, "", cutoff)
	created, ok := filter["createdAt"].(bson.M)
	if !ok {
		t.Fatalf("Filter createdAt sai kiểu: %v", filter["createdAt"])
	}
	gte, ok := created["$gte"].(int64)
	if !ok || gte != cutoff {
		t.Fatalf("Filter createdAt phải là $gte cutoff: có %v", created)
	}

	cu := now.UnixMilli() - 61*millisPerDay   // tạo 61 ngày trước
	moi := now.UnixMilli() - 59*millisPerDay  // tạo 59 ngày trước
	if cu >= gte {
		t.Errorf("Notification 61 ngày tuổi phải nằm ngoài cửa sổ: createdAt=%d, cutoff=%d", cu, gte)
	}
	if moi < gte {
		t.Errorf("Notification 59 ngày tuổi phải nằm trong cửa sổ: createdAt=%d, cutoff=%d", moi, gte)
	}
}

func TestFeedFilter_LocTheoAppKhiCoAppName(t *testing.T) {
	userID := primitive.NewObjectID()
	filter := feedFilter(userID, "discussions", 0)
	if filter["appName"] != "discussions" {
		t.Errorf("Filter appName sai: muốn discussions, có %v", filter["appName"])
	}
	filter = feedFilter(userID, "", 0)
	if _, ok := filter["appName"]; ok {
		t.Error("AppName rỗng thì không được lọc theo app")
	}
}
