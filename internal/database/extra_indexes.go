// Package database - Index bổ sung (compound, sort nhiều field, unique sparse) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"meta_learning/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAdditionalIndexes tạo các index bổ sung cho các collection cần compound index phức tạp.
// Gọi sau CreateIndexes cho từng collection.
func CreateAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// notification_items: (userId, createdAt desc, _id desc) — feed sort ổn định
	notifications := db.Collection(global.MongoDB_ColNames.Notifications)
	if _, err := notifications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
			{Key: "_id", Value: -1},
		},
		Options: options.Index().SetName("notification_user_created_id"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// notification_items: (userId, appName, lastSeen) — đếm unseen theo app
	if _, err := notifications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "appName", Value: 1},
			{Key: "lastSeen", Value: 1},
		},
		Options: options.Index().SetName("notification_user_app_seen"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// notification_preferences: (userId, courseId) unique — mỗi user một preference doc trên mỗi khóa học
	preferences := db.Collection(global.MongoDB_ColNames.NotificationPreferences)
	if _, err := preferences.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "courseId", Value: 1},
		},
		Options: options.Index().SetName("notification_pref_user_course_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// notification_deliveries: (status, createdAt) — worker lấy batch pending theo thứ tự tạo
	deliveries := db.Collection(global.MongoDB_ColNames.NotificationDeliveries)
	if _, err := deliveries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("notification_delivery_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// clipboard_entries: userId unique — mỗi user chỉ có một clipboard entry, copy mới ghi đè
	clipboardEntries := db.Collection(global.MongoDB_ColNames.ClipboardEntries)
	if _, err := clipboardEntries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetName("clipboard_user_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// tagging_object_tags: (objectType, objectId, taxonomyId, tagId) unique sparse — không gắn trùng tag lên một object
	objectTags := db.Collection(global.MongoDB_ColNames.ObjectTags)
	if _, err := objectTags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "objectType", Value: 1},
			{Key: "objectId", Value: 1},
			{Key: "taxonomyId", Value: 1},
			{Key: "tagId", Value: 1},
		},
		Options: options.Index().SetName("object_tag_unique").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// content_course_blocks: (courseId, parentId, position) — liệt kê children theo thứ tự
	courseBlocks := db.Collection(global.MongoDB_ColNames.CourseBlocks)
	if _, err := courseBlocks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "courseId", Value: 1},
			{Key: "parentId", Value: 1},
			{Key: "position", Value: 1},
		},
		Options: options.Index().SetName("course_block_parent_position"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// content_static_assets: (courseId, name) unique — một tên file chỉ xuất hiện một lần trong mỗi khóa học
	staticAssets := db.Collection(global.MongoDB_ColNames.StaticAssets)
	if _, err := staticAssets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "courseId", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().SetName("static_asset_course_name_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// content_enrollments: (userId, courseId) unique — một user chỉ ghi danh một lần vào mỗi khóa học
	enrollments := db.Collection(global.MongoDB_ColNames.Enrollments)
	if _, err := enrollments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "courseId", Value: 1},
		},
		Options: options.Index().SetName("enrollment_user_course_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
