package store

import "context"

func (s *GORMStore) ListFilesForUser(ctx context.Context, userID uint32) ([]File, error) {
	var files []File
	err := s.db.WithContext(ctx).
		Joins("JOIN file_acl ON file_acl.file_id = files.id").
		Where("file_acl.user_id = ?", userID).
		Order("files.name ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}
