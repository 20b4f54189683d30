package main

import (
	"meta_learning/internal/api/initsvc"
	"meta_learning/internal/global"
	"meta_learning/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	initService, err := initsvc.NewInitService()
	if err != nil {
		log.Fatalf("Failed to initialize init service: %v", err)
	}

	// 1. Khởi tạo Organization Root (PHẢI LÀM TRƯỚC)
	log.Info("🔄 [INIT] Step 1: Initializing root organization...")
	if err := initService.InitRootOrganization(); err != nil {
		log.Fatalf("Failed to initialize root organization: %v", err)
	}
	log.Info("✅ [INIT] Step 1: Root organization initialized")

	// 2. Khởi tạo Permissions (tạo các quyền mới nếu chưa có, bao gồm Courses, Taxonomies, ...)
	log.Info("🔄 [INIT] Step 2: Initializing permissions...")
	if err := initService.InitPermission(); err != nil {
		log.Fatalf("Failed to initialize permissions: %v", err)
	}
	log.Info("✅ [INIT] Step 2: Permissions initialized/updated successfully")

	// 3. Tạo Role Administrator (nếu chưa có) + Đảm bảo đầy đủ Permission cho Administrator
	// Tự động gán tất cả quyền trong hệ thống (bao gồm quyền mới) cho role Administrator
	if err := initService.CheckPermissionForAdministrator(); err != nil {
		log.Warnf("Failed to check permissions for administrator: %v", err)
	} else {
		log.Info("Administrator role permissions synchronized successfully")
	}

	// 4. Tạo user admin tự động từ Firebase UID (nếu có config) - Tùy chọn
	// Lưu ý: User phải đã tồn tại trong Firebase Authentication
	// Nếu không có FIREBASE_ADMIN_UID, user đầu tiên login sẽ tự động trở thành admin
	if global.MongoDB_ServerConfig.FirebaseAdminUID != "" {
		if err := initService.InitAdminUser(global.MongoDB_ServerConfig.FirebaseAdminUID); err != nil {
			log.Warnf("Failed to initialize admin user from Firebase UID: %v", err)
			log.Info("User đầu tiên login sẽ tự động trở thành admin")
		} else {
			log.Info("Admin user initialized successfully from Firebase UID")
		}
	} else {
		log.Info("FIREBASE_ADMIN_UID not set")
		log.Info("User đầu tiên login sẽ tự động trở thành admin (First user becomes admin)")
	}

	// 5. Khởi tạo taxonomy hệ thống Language + các tag ngôn ngữ mặc định
	// Taxonomy này được dùng bởi cơ chế auto language tagging khi tạo/cập nhật khóa học
	log.Info("🔄 [INIT] Step 5: Initializing system Language taxonomy...")
	if err := initService.InitLanguageTaxonomy(); err != nil {
		log.WithError(err).Error("❌ [INIT] Step 5: Failed to initialize Language taxonomy")
		log.Warnf("Failed to initialize Language taxonomy: %v", err)
	} else {
		log.Info("✅ [INIT] Step 5: Language taxonomy initialized successfully")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
