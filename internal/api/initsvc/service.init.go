// Package initsvc chứa InitService dùng để khởi tạo dữ liệu ban đầu (permissions, roles, org, taxonomy hệ thống, ...).
// Tách ra package riêng để tránh import cycle giữa auth/service và services.
package initsvc

import (
	"context"
	"fmt"
	"time"

	authmodels "meta_learning/internal/api/auth/models"
	authsvc "meta_learning/internal/api/auth/service"
	basesvc "meta_learning/internal/api/base/service"
	taggingmodels "meta_learning/internal/api/tagging/models"
	taggingsvc "meta_learning/internal/api/tagging/service"
	"meta_learning/internal/common"
	"meta_learning/internal/logger"
	"meta_learning/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitService là cấu trúc chứa các phương thức khởi tạo dữ liệu ban đầu cho hệ thống
// Bao gồm khởi tạo người dùng, vai trò, quyền và các quan hệ giữa chúng
type InitService struct {
	userService           *authsvc.UserService           // Service xử lý người dùng
	roleService           *authsvc.RoleService           // Service xử lý vai trò
	permissionService     *authsvc.PermissionService     // Service xử lý quyền
	rolePermissionService *authsvc.RolePermissionService // Service xử lý quan hệ vai trò-quyền
	userRoleService       *authsvc.UserRoleService       // Service xử lý quan hệ người dùng-vai trò
	organizationService   *authsvc.OrganizationService   // Service xử lý tổ chức
	taxonomyService       *taggingsvc.TaxonomyService    // Service xử lý taxonomy (seed taxonomy hệ thống)
	tagService            *taggingsvc.TagService         // Service xử lý tag (seed tag ngôn ngữ)
}

// NewInitService tạo mới một đối tượng InitService
// Khởi tạo các service con cần thiết để xử lý các tác vụ liên quan
// Returns:
//   - *InitService: Instance mới của InitService
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewInitService() (*InitService, error) {
	// Khởi tạo các auth services (từ domain auth)
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	roleService, err := authsvc.NewRoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create role service: %v", err)
	}

	permissionService, err := authsvc.NewPermissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create permission service: %v", err)
	}

	rolePermissionService, err := authsvc.NewRolePermissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create role permission service: %v", err)
	}

	userRoleService, err := authsvc.NewUserRoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user role service: %v", err)
	}

	organizationService, err := authsvc.NewOrganizationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create organization service: %v", err)
	}

	taxonomyService, err := taggingsvc.NewTaxonomyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create taxonomy service: %v", err)
	}

	tagService, err := taggingsvc.NewTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %v", err)
	}

	// Đăng ký callback kiểm tra admin cho base service (tránh import cycle services -> auth)
	basesvc.SetIsAdminFromContextFunc(authsvc.IsUserAdministratorFromContext)

	return &InitService{
		userService:           userService,
		roleService:           roleService,
		permissionService:     permissionService,
		rolePermissionService: rolePermissionService,
		userRoleService:       userRoleService,
		organizationService:   organizationService,
		taxonomyService:       taxonomyService,
		tagService:            tagService,
	}, nil
}

// InitialPermissions định nghĩa danh sách các quyền mặc định của hệ thống
// Được chia thành các module: Auth, Content, Clipboard, Tagging, Notification
var InitialPermissions = []authmodels.Permission{
	// ====================================  AUTH MODULE =============================================
	// Quản lý người dùng: Thêm, xem, sửa, xóa, khóa và phân quyền
	{Name: "User.Insert", Describe: "Quyền tạo người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Read", Describe: "Quyền xem danh sách người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Update", Describe: "Quyền cập nhật thông tin người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Delete", Describe: "Quyền xóa người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Block", Describe: "Quyền khóa/mở khóa người dùng", Group: "Auth", Category: "User"},
	{Name: "User.SetRole", Describe: "Quyền phân quyền cho người dùng", Group: "Auth", Category: "User"},

	// Quản lý tổ chức: Thêm, xem, sửa, xóa
	{Name: "Organization.Insert", Describe: "Quyền tạo tổ chức", Group: "Auth", Category: "Organization"},
	{Name: "Organization.Read", Describe: "Quyền xem danh sách tổ chức", Group: "Auth", Category: "Organization"},
	{Name: "Organization.Update", Describe: "Quyền cập nhật tổ chức", Group: "Auth", Category: "Organization"},
	{Name: "Organization.Delete", Describe: "Quyền xóa tổ chức", Group: "Auth", Category: "Organization"},

	// Quản lý cấu hình tổ chức: xem (raw/resolved), cập nhật, xóa config theo tổ chức
	{Name: "OrganizationConfig.Read", Describe: "Quyền xem cấu hình tổ chức (raw và resolved)", Group: "Auth", Category: "OrganizationConfig"},
	{Name: "OrganizationConfig.Update", Describe: "Quyền cập nhật cấu hình tổ chức", Group: "Auth", Category: "OrganizationConfig"},
	{Name: "OrganizationConfig.Delete", Describe: "Quyền xóa cấu hình tổ chức (không áp dụng cho config hệ thống)", Group: "Auth", Category: "OrganizationConfig"},

	// Quản lý chia sẻ dữ liệu giữa các tổ chức: Thêm, xem, sửa, xóa
	{Name: "OrganizationShare.Insert", Describe: "Quyền tạo chia sẻ dữ liệu giữa các tổ chức (CRUD)", Group: "Auth", Category: "OrganizationShare"},
	{Name: "OrganizationShare.Read", Describe: "Quyền xem danh sách chia sẻ dữ liệu giữa các tổ chức", Group: "Auth", Category: "OrganizationShare"},
	{Name: "OrganizationShare.Update", Describe: "Quyền cập nhật chia sẻ dữ liệu giữa các tổ chức", Group: "Auth", Category: "OrganizationShare"},
	{Name: "OrganizationShare.Delete", Describe: "Quyền xóa chia sẻ dữ liệu giữa các tổ chức", Group: "Auth", Category: "OrganizationShare"},
	// Quyền đặc biệt cho route CreateShare (có validation riêng về quyền với fromOrg)
	{Name: "OrganizationShare.Create", Describe: "Quyền tạo chia sẻ dữ liệu giữa các tổ chức (route đặc biệt)", Group: "Auth", Category: "OrganizationShare"},

	// Quản lý vai trò: Thêm, xem, sửa, xóa vai trò
	{Name: "Role.Insert", Describe: "Quyền tạo vai trò", Group: "Auth", Category: "Role"},
	{Name: "Role.Read", Describe: "Quyền xem danh sách vai trò", Group: "Auth", Category: "Role"},
	{Name: "Role.Update", Describe: "Quyền cập nhật vai trò", Group: "Auth", Category: "Role"},
	{Name: "Role.Delete", Describe: "Quyền xóa vai trò", Group: "Auth", Category: "Role"},

	// Quản lý quyền: Thêm, xem, sửa, xóa quyền
	{Name: "Permission.Insert", Describe: "Quyền tạo quyền", Group: "Auth", Category: "Permission"},
	{Name: "Permission.Read", Describe: "Quyền xem danh sách quyền", Group: "Auth", Category: "Permission"},
	{Name: "Permission.Update", Describe: "Quyền cập nhật quyền", Group: "Auth", Category: "Permission"},
	{Name: "Permission.Delete", Describe: "Quyền xóa quyền", Group: "Auth", Category: "Permission"},

	// Quản lý phân quyền cho vai trò: Thêm, xem, sửa, xóa phân quyền
	{Name: "RolePermission.Insert", Describe: "Quyền tạo phân quyền cho vai trò", Group: "Auth", Category: "RolePermission"},
	{Name: "RolePermission.Read", Describe: "Quyền xem phân quyền của vai trò", Group: "Auth", Category: "RolePermission"},
	{Name: "RolePermission.Update", Describe: "Quyền cập nhật phân quyền của vai trò", Group: "Auth", Category: "RolePermission"},
	{Name: "RolePermission.Delete", Describe: "Quyền xóa phân quyền của vai trò", Group: "Auth", Category: "RolePermission"},

	// Quản lý phân vai trò cho người dùng: Thêm, xem, sửa, xóa phân vai trò
	{Name: "UserRole.Insert", Describe: "Quyền phân công vai trò cho người dùng", Group: "Auth", Category: "UserRole"},
	{Name: "UserRole.Read", Describe: "Quyền xem vai trò của người dùng", Group: "Auth", Category: "UserRole"},
	{Name: "UserRole.Update", Describe: "Quyền cập nhật vai trò của người dùng", Group: "Auth", Category: "UserRole"},
	{Name: "UserRole.Delete", Describe: "Quyền xóa vai trò của người dùng", Group: "Auth", Category: "UserRole"},

	// Quản lý khởi tạo hệ thống: Thiết lập administrator và đồng bộ quyền
	{Name: "Init.SetAdmin", Describe: "Quyền thiết lập administrator và đồng bộ quyền cho Administrator", Group: "Auth", Category: "Init"},

	// ==================================== CONTENT MODULE ===========================================
	// Quản lý khóa học (collection: content_courses): Thêm, xem, sửa, xóa
	{Name: "Courses.Insert", Describe: "Quyền tạo khóa học", Group: "Content", Category: "Courses"},
	{Name: "Courses.Read", Describe: "Quyền xem danh sách khóa học", Group: "Content", Category: "Courses"},
	{Name: "Courses.Update", Describe: "Quyền cập nhật khóa học", Group: "Content", Category: "Courses"},
	{Name: "Courses.Delete", Describe: "Quyền xóa khóa học", Group: "Content", Category: "Courses"},

	// Quản lý block nội dung (collection: content_course_blocks): Thêm, xem, sửa, xóa
	{Name: "CourseBlocks.Insert", Describe: "Quyền tạo block nội dung", Group: "Content", Category: "CourseBlocks"},
	{Name: "CourseBlocks.Read", Describe: "Quyền xem cây block nội dung", Group: "Content", Category: "CourseBlocks"},
	{Name: "CourseBlocks.Update", Describe: "Quyền cập nhật block nội dung", Group: "Content", Category: "CourseBlocks"},
	{Name: "CourseBlocks.Delete", Describe: "Quyền xóa block nội dung", Group: "Content", Category: "CourseBlocks"},

	// Quản lý static asset (collection: content_static_assets): Thêm, xem, sửa, xóa
	{Name: "StaticAssets.Insert", Describe: "Quyền upload static asset", Group: "Content", Category: "StaticAssets"},
	{Name: "StaticAssets.Read", Describe: "Quyền xem danh sách static asset", Group: "Content", Category: "StaticAssets"},
	{Name: "StaticAssets.Update", Describe: "Quyền cập nhật static asset", Group: "Content", Category: "StaticAssets"},
	{Name: "StaticAssets.Delete", Describe: "Quyền xóa static asset", Group: "Content", Category: "StaticAssets"},

	// Quản lý thư viện nội dung (collection: content_libraries): Thêm, xem, sửa, xóa, đồng bộ
	{Name: "ContentLibraries.Insert", Describe: "Quyền tạo thư viện nội dung", Group: "Content", Category: "ContentLibraries"},
	{Name: "ContentLibraries.Read", Describe: "Quyền xem danh sách thư viện nội dung", Group: "Content", Category: "ContentLibraries"},
	{Name: "ContentLibraries.Update", Describe: "Quyền cập nhật thư viện nội dung", Group: "Content", Category: "ContentLibraries"},
	{Name: "ContentLibraries.Delete", Describe: "Quyền xóa thư viện nội dung", Group: "Content", Category: "ContentLibraries"},
	{Name: "ContentLibraries.Sync", Describe: "Quyền đồng bộ block từ thư viện sang khóa học", Group: "Content", Category: "ContentLibraries"},

	// Quản lý block thư viện (collection: content_library_blocks): Thêm, xem, sửa, xóa
	{Name: "LibraryBlocks.Insert", Describe: "Quyền tạo block thư viện", Group: "Content", Category: "LibraryBlocks"},
	{Name: "LibraryBlocks.Read", Describe: "Quyền xem danh sách block thư viện", Group: "Content", Category: "LibraryBlocks"},
	{Name: "LibraryBlocks.Update", Describe: "Quyền cập nhật block thư viện", Group: "Content", Category: "LibraryBlocks"},
	{Name: "LibraryBlocks.Delete", Describe: "Quyền xóa block thư viện", Group: "Content", Category: "LibraryBlocks"},

	// Quản lý ghi danh (collection: content_enrollments): Thêm, xem, sửa, xóa
	{Name: "Enrollments.Insert", Describe: "Quyền ghi danh người dùng vào khóa học", Group: "Content", Category: "Enrollments"},
	{Name: "Enrollments.Read", Describe: "Quyền xem danh sách ghi danh", Group: "Content", Category: "Enrollments"},
	{Name: "Enrollments.Update", Describe: "Quyền cập nhật ghi danh", Group: "Content", Category: "Enrollments"},
	{Name: "Enrollments.Delete", Describe: "Quyền xóa ghi danh", Group: "Content", Category: "Enrollments"},

	// ==================================== CLIPBOARD MODULE ===========================================
	// Clipboard copy/paste nội dung giữa các khóa học
	{Name: "Clipboard.Read", Describe: "Quyền xem clipboard của bản thân", Group: "Clipboard", Category: "Clipboard"},
	{Name: "Clipboard.Copy", Describe: "Quyền copy block vào clipboard", Group: "Clipboard", Category: "Clipboard"},
	{Name: "Clipboard.Paste", Describe: "Quyền paste nội dung từ clipboard", Group: "Clipboard", Category: "Clipboard"},

	// ==================================== TAGGING MODULE ===========================================
	// Quản lý taxonomy (collection: tagging_taxonomies): Thêm, xem, sửa, xóa, đổi phạm vi tổ chức
	{Name: "Taxonomies.Insert", Describe: "Quyền tạo taxonomy", Group: "Tagging", Category: "Taxonomies"},
	{Name: "Taxonomies.Read", Describe: "Quyền xem danh sách taxonomy", Group: "Tagging", Category: "Taxonomies"},
	{Name: "Taxonomies.Update", Describe: "Quyền cập nhật taxonomy", Group: "Tagging", Category: "Taxonomies"},
	{Name: "Taxonomies.Delete", Describe: "Quyền xóa taxonomy", Group: "Tagging", Category: "Taxonomies"},
	{Name: "Taxonomies.SetOrgs", Describe: "Quyền đổi phạm vi tổ chức của taxonomy", Group: "Tagging", Category: "Taxonomies"},

	// Quản lý tag (collection: tagging_tags): Thêm, xem, sửa, xóa
	{Name: "Tags.Insert", Describe: "Quyền tạo tag", Group: "Tagging", Category: "Tags"},
	{Name: "Tags.Read", Describe: "Quyền xem danh sách tag", Group: "Tagging", Category: "Tags"},
	{Name: "Tags.Update", Describe: "Quyền cập nhật tag", Group: "Tagging", Category: "Tags"},
	{Name: "Tags.Delete", Describe: "Quyền xóa tag", Group: "Tagging", Category: "Tags"},

	// Quản lý object tag (collection: tagging_object_tags): Xem và gắn tag lên object
	{Name: "ObjectTags.Read", Describe: "Quyền xem tag của object", Group: "Tagging", Category: "ObjectTags"},
	{Name: "ObjectTags.Apply", Describe: "Quyền gắn/gỡ tag lên object", Group: "Tagging", Category: "ObjectTags"},

	// ==================================== NOTIFICATION MODULE ===========================================
	// Feed thông báo của người dùng: Xem feed, đánh dấu đã thấy/đã đọc
	{Name: "Notifications.Read", Describe: "Quyền xem feed thông báo của bản thân", Group: "Notification", Category: "Notifications"},
	{Name: "Notifications.Update", Describe: "Quyền đánh dấu đã thấy/đã đọc thông báo", Group: "Notification", Category: "Notifications"},

	// Preference notification theo khóa học
	{Name: "NotificationPreferences.Update", Describe: "Quyền chỉnh preference notification của bản thân", Group: "Notification", Category: "NotificationPreferences"},
}

// InitPermission khởi tạo các quyền mặc định cho hệ thống
// Chỉ tạo mới các quyền chưa tồn tại trong database
// Returns:
//   - error: Lỗi nếu có trong quá trình khởi tạo
func (h *InitService) InitPermission() error {
	// Duyệt qua danh sách quyền mặc định
	for _, permission := range InitialPermissions {
		// Kiểm tra quyền đã tồn tại chưa
		filter := bson.M{"name": permission.Name}
		_, err := h.permissionService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)

		// Bỏ qua nếu có lỗi khác ErrNotFound
		if err != nil && err != common.ErrNotFound {
			continue
		}

		// Tạo mới quyền nếu chưa tồn tại
		if err == common.ErrNotFound {
			// Set IsSystem = true cho tất cả permissions được tạo trong init
			permission.IsSystem = true
			// Sử dụng context cho phép insert system data trong quá trình init
			initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
			_, err = h.permissionService.BaseServiceMongoImpl.InsertOne(initCtx, permission)
			if err != nil {
				return fmt.Errorf("failed to insert permission %s: %v", permission.Name, err)
			}
		}
	}
	return nil
}

// InitRootOrganization khởi tạo Organization System (Level -1)
// System organization là tổ chức cấp cao nhất, chứa Administrator, không có parent, không thể xóa
// Returns:
//   - error: Lỗi nếu có trong quá trình khởi tạo
func (h *InitService) InitRootOrganization() error {
	log := logger.GetAppLogger()

	// Kiểm tra System Organization đã tồn tại chưa
	systemFilter := bson.M{
		"type":  authmodels.OrganizationTypeSystem,
		"level": -1,
		"code":  "SYSTEM",
	}

	_, err := h.organizationService.BaseServiceMongoImpl.FindOne(context.TODO(), systemFilter, nil)
	if err != nil && err != common.ErrNotFound {
		log.Errorf("❌ [INIT] Failed to check system organization: %v", err)
		return fmt.Errorf("failed to check system organization: %v", err)
	}

	// Nếu đã tồn tại, không cần tạo mới
	if err == nil {
		log.Info("✅ [INIT] System Organization already exists, skipping creation")
		return nil
	}

	// Tạo mới System Organization
	log.Info("🔄 [INIT] Creating new System Organization...")
	systemOrgModel := authmodels.Organization{
		Name:     "Hệ Thống",
		Code:     "SYSTEM",
		Type:     authmodels.OrganizationTypeSystem,
		ParentID: nil, // System không có parent
		Path:     "/system",
		Level:    -1,
		IsActive: true,
		IsSystem: true, // Đánh dấu là dữ liệu hệ thống
	}

	// Sử dụng context cho phép insert system data trong quá trình init
	initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
	_, err = h.organizationService.BaseServiceMongoImpl.InsertOne(initCtx, systemOrgModel)
	if err != nil {
		log.Errorf("❌ [INIT] Failed to create system organization: %v", err)
		return fmt.Errorf("failed to create system organization: %v", err)
	}

	log.Info("✅ [INIT] System Organization created successfully")
	return nil
}

// GetRootOrganization lấy System Organization (Level -1) - tổ chức cấp cao nhất
// Returns:
//   - *authmodels.Organization: System Organization
//   - error: Lỗi nếu có
func (h *InitService) GetRootOrganization() (*authmodels.Organization, error) {
	filter := bson.M{
		"type":  authmodels.OrganizationTypeSystem,
		"level": -1,
		"code":  "SYSTEM",
	}
	org, err := h.organizationService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
	if err != nil {
		return nil, fmt.Errorf("system organization not found: %v", err)
	}

	var modelOrg authmodels.Organization
	bsonBytes, _ := bson.Marshal(org)
	err = bson.Unmarshal(bsonBytes, &modelOrg)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}

	return &modelOrg, nil
}

// InitRole khởi tạo vai trò Administrator mặc định
// Tạo vai trò và gán tất cả các quyền cho vai trò này
// Role Administrator phải thuộc System Organization (Level -1)
func (h *InitService) InitRole() error {
	// Lấy System Organization (Level -1)
	rootOrg, err := h.GetRootOrganization()
	if err != nil {
		return fmt.Errorf("failed to get system organization: %v", err)
	}

	// Kiểm tra vai trò Administrator đã tồn tại chưa
	adminRole, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil && err != common.ErrNotFound {
		return err
	}

	var modelRole authmodels.Role
	roleExists := false

	if err == nil {
		// Nếu đã tồn tại, kiểm tra và cập nhật OwnerOrganizationID nếu cần
		bsonBytes, _ := bson.Marshal(adminRole)
		err = bson.Unmarshal(bsonBytes, &modelRole)
		if err == nil {
			roleExists = true
			if modelRole.OwnerOrganizationID.IsZero() {
				updateData := bson.M{
					"ownerOrganizationId": rootOrg.ID,
				}
				_, err = h.roleService.BaseServiceMongoImpl.UpdateOne(context.TODO(), bson.M{"_id": modelRole.ID}, bson.M{"$set": updateData}, nil)
				if err != nil {
					return fmt.Errorf("failed to update administrator role with organization: %v", err)
				}
			}
		}
	}

	// Nếu chưa tồn tại, tạo mới vai trò Administrator
	if !roleExists {
		newAdminRole := authmodels.Role{
			Name:                "Administrator",
			Describe:            "Vai trò quản trị hệ thống",
			OwnerOrganizationID: rootOrg.ID,
			IsSystem:            true, // Đánh dấu là dữ liệu hệ thống
		}

		// Sử dụng context cho phép insert system data trong quá trình init
		initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
		adminRole, err = h.roleService.BaseServiceMongoImpl.InsertOne(initCtx, newAdminRole)
		if err != nil {
			return fmt.Errorf("failed to create administrator role: %v", err)
		}

		bsonBytes, _ := bson.Marshal(adminRole)
		err = bson.Unmarshal(bsonBytes, &modelRole)
		if err != nil {
			return fmt.Errorf("failed to decode administrator role: %v", err)
		}
	}

	// Đảm bảo role Administrator có đầy đủ tất cả permissions
	return h.syncAdministratorPermissions(modelRole.ID)
}

// syncAdministratorPermissions gán tất cả quyền cho vai trò Administrator với Scope = 1
// (Tổ chức đó và tất cả các tổ chức con). Quyền đã có nhưng scope = 0 được nâng lên 1.
func (h *InitService) syncAdministratorPermissions(roleID primitive.ObjectID) error {
	// Lấy danh sách tất cả các quyền
	permissions, err := h.permissionService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{}, nil)
	if err != nil {
		return fmt.Errorf("failed to get permissions: %v", err)
	}

	for _, permissionData := range permissions {
		var modelPermission authmodels.Permission
		bsonBytes, _ := bson.Marshal(permissionData)
		err := bson.Unmarshal(bsonBytes, &modelPermission)
		if err != nil {
			continue // Bỏ qua permission không decode được
		}

		// Kiểm tra quyền đã được gán chưa
		filter := bson.M{
			"roleId":       roleID,
			"permissionId": modelPermission.ID,
		}

		existingRP, err := h.rolePermissionService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
		if err != nil && err != common.ErrNotFound {
			continue // Bỏ qua nếu có lỗi khác ErrNotFound
		}

		// Nếu chưa có quyền, thêm mới với Scope = 1 (Tổ chức đó và tất cả các tổ chức con)
		if err == common.ErrNotFound {
			rolePermission := authmodels.RolePermission{
				RoleID:       roleID,
				PermissionID: modelPermission.ID,
				Scope:        1, // Scope = 1: Tổ chức đó và tất cả các tổ chức con
			}
			_, err = h.rolePermissionService.BaseServiceMongoImpl.InsertOne(context.TODO(), rolePermission)
			if err != nil {
				continue // Bỏ qua nếu insert thất bại
			}
		} else {
			// Nếu đã có, kiểm tra scope - nếu là 0 thì cập nhật thành 1 (để admin có quyền xem tất cả)
			var existingModelRP authmodels.RolePermission
			bsonBytes, _ := bson.Marshal(existingRP)
			err = bson.Unmarshal(bsonBytes, &existingModelRP)
			if err == nil && existingModelRP.Scope == 0 {
				updateData := bson.M{
					"$set": bson.M{
						"scope": 1,
					},
				}
				_, err = h.rolePermissionService.BaseServiceMongoImpl.UpdateOne(context.TODO(), bson.M{"_id": existingModelRP.ID}, updateData, nil)
				if err != nil {
					continue
				}
			}
		}
	}

	return nil
}

// CheckPermissionForAdministrator kiểm tra và cập nhật quyền cho vai trò Administrator
// Đảm bảo vai trò Administrator có đầy đủ tất cả các quyền trong hệ thống
func (h *InitService) CheckPermissionForAdministrator() (err error) {
	// Kiểm tra vai trò Administrator có tồn tại không
	role, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil && err != common.ErrNotFound {
		return err
	}
	// Nếu chưa có vai trò Administrator, tạo mới
	if err == common.ErrNotFound {
		return h.InitRole()
	}

	// Chuyển đổi dữ liệu sang model
	var modelRole authmodels.Role
	bsonBytes, _ := bson.Marshal(role)
	err = bson.Unmarshal(bsonBytes, &modelRole)
	if err != nil {
		return common.ErrInvalidFormat
	}

	return h.syncAdministratorPermissions(modelRole.ID)
}

// SetAdministrator gán quyền Administrator cho một người dùng
// Trả về lỗi nếu người dùng không tồn tại hoặc đã có quyền Administrator
func (h *InitService) SetAdministrator(userID primitive.ObjectID) (result interface{}, err error) {
	// Kiểm tra user có tồn tại không
	user, err := h.userService.BaseServiceMongoImpl.FindOneById(context.TODO(), userID)
	if err != nil {
		return nil, err
	}

	// Kiểm tra role Administrator có tồn tại không
	role, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil && err != common.ErrNotFound {
		return nil, err
	}

	// Nếu chưa có role Administrator, tạo mới
	if err == common.ErrNotFound {
		err = h.InitRole()
		if err != nil {
			return nil, err
		}

		role, err = h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
		if err != nil {
			return nil, err
		}
	}

	// Kiểm tra userRole đã tồn tại chưa
	_, err = h.userRoleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"userId": user.ID, "roleId": role.ID}, nil)
	// Kiểm tra nếu userRole đã tồn tại
	if err == nil {
		// Nếu không có lỗi, tức là đã tìm thấy userRole, trả về lỗi đã định nghĩa
		return nil, common.ErrUserAlreadyAdmin
	}

	// Xử lý các lỗi khác ngoài ErrNotFound
	if err != common.ErrNotFound {
		return nil, err
	}

	// Nếu userRole chưa tồn tại, tạo mới
	userRole := authmodels.UserRole{
		UserID: user.ID,
		RoleID: role.ID,
	}
	result, err = h.userRoleService.BaseServiceMongoImpl.InsertOne(context.TODO(), userRole)
	if err != nil {
		return nil, err
	}

	// Đảm bảo role Administrator có đầy đủ tất cả các quyền trong hệ thống
	err = h.CheckPermissionForAdministrator()
	if err != nil {
		// Log lỗi nhưng không fail việc set administrator
		// Vì role đã được gán, chỉ là quyền có thể chưa được cập nhật đầy đủ
		_ = fmt.Errorf("failed to check permissions for administrator: %v", err)
	}

	return result, nil
}

// InitAdminUser tạo user admin tự động từ Firebase UID (nếu có config)
// Sử dụng khi có FIREBASE_ADMIN_UID trong config
// User sẽ được tạo từ Firebase và tự động gán role Administrator
func (h *InitService) InitAdminUser(firebaseUID string) error {
	if firebaseUID == "" {
		return nil // Không có config, bỏ qua
	}

	// Kiểm tra user đã tồn tại chưa
	filter := bson.M{"firebaseUid": firebaseUID}
	existingUser, err := h.userService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
	if err != nil && err != common.ErrNotFound {
		return fmt.Errorf("failed to check existing admin user: %v", err)
	}

	var userID primitive.ObjectID

	// Nếu user chưa tồn tại, tạo từ Firebase
	if err == common.ErrNotFound {
		// Lấy thông tin user từ Firebase
		firebaseUser, err := utility.GetUserByUID(context.TODO(), firebaseUID)
		if err != nil {
			return fmt.Errorf("failed to get user from Firebase: %v", err)
		}

		// Tạo user mới
		currentTime := time.Now().Unix()
		newUser := &authmodels.User{
			FirebaseUID:   firebaseUID,
			Email:         firebaseUser.Email,
			EmailVerified: firebaseUser.EmailVerified,
			Phone:         firebaseUser.PhoneNumber,
			PhoneVerified: firebaseUser.PhoneNumber != "",
			Name:          firebaseUser.DisplayName,
			AvatarURL:     firebaseUser.PhotoURL,
			IsBlock:       false,
			Tokens:        []authmodels.Token{},
			CreatedAt:     currentTime,
			UpdatedAt:     currentTime,
		}

		createdUser, err := h.userService.BaseServiceMongoImpl.InsertOne(context.TODO(), *newUser)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %v", err)
		}

		userID = createdUser.ID
	} else {
		// User đã tồn tại
		userID = existingUser.ID
	}

	// Gán role Administrator cho user
	_, err = h.SetAdministrator(userID)
	if err != nil && err != common.ErrUserAlreadyAdmin {
		return fmt.Errorf("failed to set administrator role: %v", err)
	}

	return nil
}

// GetInitStatus kiểm tra trạng thái khởi tạo hệ thống
// Trả về thông tin về các đơn vị cơ bản đã được khởi tạo chưa
func (h *InitService) GetInitStatus() (map[string]interface{}, error) {
	status := make(map[string]interface{})

	// Kiểm tra Organization Root
	_, err := h.GetRootOrganization()
	status["organization"] = map[string]interface{}{
		"initialized": err == nil,
		"error": func() string {
			if err != nil {
				return err.Error()
			} else {
				return ""
			}
		}(),
	}

	// Kiểm tra Permissions
	permissions, err := h.permissionService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{}, nil)
	permissionCount := 0
	if err == nil {
		permissionCount = len(permissions)
	}
	status["permissions"] = map[string]interface{}{
		"initialized": err == nil && permissionCount > 0,
		"count":       permissionCount,
		"error": func() string {
			if err != nil {
				return err.Error()
			} else {
				return ""
			}
		}(),
	}

	// Kiểm tra Role Administrator và admin users
	adminRole, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	status["roles"] = map[string]interface{}{
		"initialized": err == nil,
		"error": func() string {
			if err != nil && err != common.ErrNotFound {
				return err.Error()
			} else {
				return ""
			}
		}(),
	}
	adminUserCount := 0
	if err == nil {
		var modelRole authmodels.Role
		bsonBytes, _ := bson.Marshal(adminRole)
		if err := bson.Unmarshal(bsonBytes, &modelRole); err == nil {
			userRoles, err := h.userRoleService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{"roleId": modelRole.ID}, nil)
			if err == nil {
				adminUserCount = len(userRoles)
			}
		}
	}
	status["adminUsers"] = map[string]interface{}{
		"count":    adminUserCount,
		"hasAdmin": adminUserCount > 0,
	}

	// Kiểm tra taxonomy hệ thống Language
	_, err = h.taxonomyService.GetLanguageTaxonomy(context.TODO())
	status["languageTaxonomy"] = map[string]interface{}{
		"initialized": err == nil,
	}

	return status, nil
}

// HasAnyAdministrator kiểm tra xem hệ thống đã có administrator chưa
// Returns:
//   - bool: true nếu đã có ít nhất một administrator
//   - error: Lỗi nếu có
func (h *InitService) HasAnyAdministrator() (bool, error) {
	// Kiểm tra role Administrator có tồn tại không
	adminRole, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return false, nil // Chưa có role Administrator
		}
		return false, err
	}

	// Chuyển đổi sang model
	var modelRole authmodels.Role
	bsonBytes, _ := bson.Marshal(adminRole)
	if err := bson.Unmarshal(bsonBytes, &modelRole); err != nil {
		return false, err
	}

	// Kiểm tra có user nào có role Administrator không
	userRoles, err := h.userRoleService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{"roleId": modelRole.ID}, nil)
	if err != nil {
		return false, err
	}

	return len(userRoles) > 0, nil
}

// initialLanguageTags là danh sách tag ngôn ngữ mặc định của taxonomy hệ thống Language.
// ExternalID là language code (ISO 639-1), Value là tên hiển thị.
var initialLanguageTags = []taggingmodels.Tag{
	{Value: "English", ExternalID: "en"},
	{Value: "Tiếng Việt", ExternalID: "vi"},
	{Value: "Español", ExternalID: "es"},
	{Value: "Français", ExternalID: "fr"},
	{Value: "Deutsch", ExternalID: "de"},
	{Value: "中文", ExternalID: "zh"},
	{Value: "日本語", ExternalID: "ja"},
	{Value: "한국어", ExternalID: "ko"},
	{Value: "Português", ExternalID: "pt"},
	{Value: "Русский", ExternalID: "ru"},
	{Value: "العربية", ExternalID: "ar"},
	{Value: "हिन्दी", ExternalID: "hi"},
}

// InitLanguageTaxonomy khởi tạo taxonomy hệ thống Language và các tag ngôn ngữ mặc định.
// Taxonomy này được dùng để tự động gắn tag ngôn ngữ cho khóa học khi tạo/cập nhật.
// Chỉ tạo mới những gì chưa tồn tại.
func (h *InitService) InitLanguageTaxonomy() error {
	log := logger.GetAppLogger()

	rootOrg, err := h.GetRootOrganization()
	if err != nil {
		return fmt.Errorf("failed to get system organization: %v", err)
	}

	// Kiểm tra taxonomy Language đã tồn tại chưa
	taxonomy, err := h.taxonomyService.GetLanguageTaxonomy(context.TODO())
	if err != nil && err != common.ErrNotFound {
		return fmt.Errorf("failed to check language taxonomy: %v", err)
	}

	initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())

	if err == common.ErrNotFound {
		log.Info("🔄 [INIT] Creating system Language taxonomy...")
		newTaxonomy := taggingmodels.Taxonomy{
			Name:                taggingsvc.LanguageTaxonomyName,
			Description:         "Taxonomy hệ thống chứa tag ngôn ngữ của khóa học. Tag được gắn tự động khi tạo/cập nhật khóa học.",
			Enabled:             true,
			AllowMultiple:       false,
			AllowFreeText:       false,
			SystemDefined:       true,
			OrgScope:            taggingmodels.OrgScopeAllOrgs,
			OwnerOrganizationID: rootOrg.ID,
		}
		taxonomy, err = h.taxonomyService.InsertOne(initCtx, newTaxonomy)
		if err != nil {
			return fmt.Errorf("failed to create language taxonomy: %v", err)
		}
		log.Info("✅ [INIT] System Language taxonomy created")
	}

	// Seed các tag ngôn ngữ chưa tồn tại
	created := 0
	for _, tag := range initialLanguageTags {
		filter := bson.M{"taxonomyId": taxonomy.ID, "externalId": tag.ExternalID}
		_, err := h.tagService.FindOne(context.TODO(), filter, nil)
		if err == nil {
			continue
		}
		if err != common.ErrNotFound {
			continue
		}

		tag.TaxonomyID = taxonomy.ID
		if _, err := h.tagService.InsertOne(initCtx, tag); err != nil {
			log.WithError(err).Warnf("⚠️ [INIT] Failed to seed language tag %s", tag.ExternalID)
			continue
		}
		created++
	}

	if created > 0 {
		log.Infof("✅ [INIT] Seeded %d language tags", created)
	}
	return nil
}
