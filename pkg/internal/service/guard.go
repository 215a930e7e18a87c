package service

import (
	"errors"

	"gorm.io/gorm"
)

// Owned 可以判定归属的资源.
type Owned interface {
	OwnerRef() uint
}

// fetchOwned 按主键取资源并校验归属：不存在返回 NotFound，
// 属于其他用户返回 Forbidden. preloads 按需预加载关联.
func fetchOwned[E any, PE interface {
	*E
	Owned
}](db *gorm.DB, id, ownerID uint, kind string, preloads ...string) (PE, error) {
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}

	var entity E

	if err := q.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound(kind + " not found")
		}

		return nil, err
	}

	pe := PE(&entity)
	if pe.OwnerRef() != ownerID {
		return nil, NewForbidden("you do not own this " + kind)
	}

	return pe, nil
}
