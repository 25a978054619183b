package repository

import (
	"Inkwell/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newDryRunDB 只生成 SQL，不连接数据库
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:root@tcp(127.0.0.1:3306)/inkwell?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestReleaseLikesOf(t *testing.T) {
	db := newDryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return releaseLikesOf(tx, 7)
	})

	assert.Contains(t, sql, "UPDATE `posts` SET `likes_count`=GREATEST(CAST(likes_count AS SIGNED) - 1, 0)")
	assert.Contains(t, sql, "id IN (SELECT `post_id` FROM `post_likes` WHERE user_id = 7)")
}

func TestOfAuthor(t *testing.T) {
	db := newDryRunDB(t)
	query := func(authorID uint64) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var posts []*model.Post
			return tx.Model(&model.Post{}).Scopes(ofAuthor(authorID)).Find(&posts)
		})
	}

	assert.NotContains(t, query(0), "author_id")
	assert.Contains(t, query(7), "WHERE author_id = 7")
}
