package main

import (
	"context"
	"meta_learning/config"
	authmodels "meta_learning/internal/api/auth/models"
	clipboardmodels "meta_learning/internal/api/clipboard/models"
	contentmodels "meta_learning/internal/api/content/models"
	notifmodels "meta_learning/internal/api/notification/models"
	taggingmodels "meta_learning/internal/api/tagging/models"
	"meta_learning/internal/database"
	"meta_learning/internal/global"
	"meta_learning/internal/utility"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "auth_users"
	global.MongoDB_ColNames.Permissions = "auth_permissions"
	global.MongoDB_ColNames.Roles = "auth_roles"
	global.MongoDB_ColNames.RolePermissions = "auth_role_permissions"
	global.MongoDB_ColNames.UserRoles = "auth_user_roles"
	global.MongoDB_ColNames.Organizations = "auth_organizations"
	global.MongoDB_ColNames.OrganizationConfigItems = "auth_organization_config_items"
	global.MongoDB_ColNames.OrganizationShares = "auth_organization_shares"

	// Content Collections (prefix "content_" để nhất quán)
	global.MongoDB_ColNames.Courses = "content_courses"
	global.MongoDB_ColNames.CourseBlocks = "content_course_blocks"
	global.MongoDB_ColNames.StaticAssets = "content_static_assets"
	global.MongoDB_ColNames.ContentLibraries = "content_libraries"
	global.MongoDB_ColNames.LibraryBlocks = "content_library_blocks"
	global.MongoDB_ColNames.Enrollments = "content_enrollments"

	// Clipboard Collections
	global.MongoDB_ColNames.ClipboardEntries = "clipboard_entries"

	// Tagging Collections (prefix "tagging_")
	global.MongoDB_ColNames.Taxonomies = "tagging_taxonomies"
	global.MongoDB_ColNames.Tags = "tagging_tags"
	global.MongoDB_ColNames.ObjectTags = "tagging_object_tags"

	// Notification Collections (prefix "notification_")
	global.MongoDB_ColNames.Notifications = "notification_items"
	global.MongoDB_ColNames.NotificationPreferences = "notification_preferences"
	global.MongoDB_ColNames.NotificationDeliveries = "notification_deliveries"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, exists, config_value, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khơi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Auth
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Permissions), authmodels.Permission{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Roles), authmodels.Role{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.UserRoles), authmodels.UserRole{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.RolePermissions), authmodels.RolePermission{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Organizations), authmodels.Organization{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.OrganizationConfigItems), authmodels.OrganizationConfigItem{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.OrganizationShares), authmodels.OrganizationShare{})

	// Content Indexes
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Courses), contentmodels.Course{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.CourseBlocks), contentmodels.CourseBlock{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.StaticAssets), contentmodels.StaticAsset{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.ContentLibraries), contentmodels.ContentLibrary{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.LibraryBlocks), contentmodels.LibraryBlock{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Enrollments), contentmodels.CourseEnrollment{})

	// Clipboard Indexes
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.ClipboardEntries), clipboardmodels.ClipboardEntry{})

	// Tagging Indexes
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Taxonomies), taggingmodels.Taxonomy{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Tags), taggingmodels.Tag{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.ObjectTags), taggingmodels.ObjectTag{})

	// Notification Indexes
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Notifications), notifmodels.Notification{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.NotificationPreferences), notifmodels.NotificationPreference{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.NotificationDeliveries), notifmodels.NotificationDelivery{})

	// Các index compound không định nghĩa được qua model tags
	if err := database.CreateAdditionalIndexes(context.TODO(), global.MongoDB_Session.Database(dbName)); err != nil {
		logrus.Warnf("Failed to create additional indexes: %v", err)
	}
}

// initFirebase khởi tạo Firebase Admin SDK
func initFirebase() {
	cfg := global.MongoDB_ServerConfig

	// Kiểm tra Firebase config có đầy đủ không
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, chỉ log warning để hệ thống vẫn chạy được
		return
	}

	logrus.Info("Firebase initialized successfully")
}
