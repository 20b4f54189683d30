package global

import (
	"meta_learning/config"
	"meta_learning/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	// Auth & Organization Collections
	Users                   string // Tên collection cho người dùng
	Permissions             string // Tên collection cho quyền
	Roles                   string // Tên collection cho vai trò
	RolePermissions         string // Tên collection cho vai trò và quyền
	UserRoles               string // Tên collection cho người dùng và vai trò
	Organizations           string // Tên collection cho tổ chức
	OrganizationConfigItems string // Tên collection cho cấu hình tổ chức
	OrganizationShares      string // Tên collection cho chia sẻ dữ liệu giữa các tổ chức

	// Content Collections (cây nội dung khóa học)
	Courses          string // Tên collection cho khóa học
	CourseBlocks     string // Tên collection cho block nội dung trong cây khóa học
	StaticAssets     string // Tên collection cho static asset của khóa học
	ContentLibraries string // Tên collection cho thư viện nội dung dùng chung
	LibraryBlocks    string // Tên collection cho block trong thư viện
	Enrollments      string // Tên collection cho ghi danh khóa học

	// Clipboard Collections (copy/paste nội dung)
	ClipboardEntries string // Tên collection cho clipboard của người dùng

	// Tagging Collections (taxonomy / tag / object tag)
	Taxonomies string // Tên collection cho taxonomy
	Tags       string // Tên collection cho tag thuộc taxonomy
	ObjectTags string // Tên collection cho tag đã gán lên content object

	// Notification Collections
	Notifications           string // Tên collection cho notification feed
	NotificationPreferences string // Tên collection cho preference theo user + course
	NotificationDeliveries  string // Tên collection cho delivery queue (email/push)
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
