package clipboardhdl

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meta_learning/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestClipboardHandler dựng ClipboardHandler với các collection đăng ký từ một
// client chưa kết nối (driver kết nối lazy). Các test dưới đây chỉ đi qua các nhánh
// validate trước khi chạm database nên không cần MongoDB thật.
func newTestClipboardHandler(t *testing.T) *ClipboardHandler {
	t.Helper()
	global.InitValidator()

	global.MongoDB_ColNames.Courses = "content_courses"
	global.MongoDB_ColNames.CourseBlocks = "content_course_blocks"
	global.MongoDB_ColNames.StaticAssets = "content_static_assets"
	global.MongoDB_ColNames.ClipboardEntries = "clipboard_entries"

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:27017").
		SetConnectTimeout(200*time.Millisecond).
		SetServerSelectionTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("Không tạo được mongo client: %v", err)
	}
	db := client.Database("meta_learning_test")
	for _, name := range []string{
		global.MongoDB_ColNames.Courses,
		global.MongoDB_ColNames.CourseBlocks,
		global.MongoDB_ColNames.StaticAssets,
		global.MongoDB_ColNames.ClipboardEntries,
	} {
		if _, exists := global.RegistryCollections.Get(name); !exists {
			if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
				t.Fatalf("Không đăng ký được collection %s: %v", name, err)
			}
		}
	}

	hdl, err := NewClipboardHandler()
	if err != nil {
		t.Fatalf("Không tạo được ClipboardHandler: %v", err)
	}
	return hdl
}

func TestCopy_ThieuUserContextTraVe401(t *testing.T) {
	hdl := newTestClipboardHandler(t)
	app := fiber.New()
	app.Post("/clipboard", hdl.Copy)

	body := `{"blockId":"` + primitive.NewObjectID().Hex() + `"}`
	req := httptest.NewRequest("POST", "/clipboard", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Lỗi khi gọi request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("Status code sai: muốn 401, có %d", resp.StatusCode)
	}
}

func TestCopy_BlockIDSaiDinhDangTraVe400(t *testing.T) {
	hdl := newTestClipboardHandler(t)
	app := fiber.New()
	app.Post("/clipboard", func(c fiber.Ctx) error {
		c.Locals("user_id", primitive.NewObjectID().Hex())
		return hdl.Copy(c)
	})

	req := httptest.NewRequest("POST", "/clipboard", strings.NewReader(`{"blockId":"khong-phai-objectid"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Lỗi khi gọi request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Status code sai: muốn 400, có %d", resp.StatusCode)
	}
}
