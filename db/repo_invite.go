package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"puffpoint-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInviteNotFound  = errors.New("invite not found")
	ErrInviteExpired   = errors.New("invite expired")
	ErrInviteExhausted = errors.New("invite exhausted")
	ErrInviteQuota     = errors.New("invite limit reached")
)

// InviteDailyLimit 每个清单每个 UTC 日期最多可签发的邀请数
const InviteDailyLimit = 20

// InviteDayKey 限额计数的日期键（UTC）
func InviteDayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CreateListInvite 签发：限额计数与落库在同一事务里。
// 计数自增必须在 SQL 里原子完成：SELECT FOR UPDATE 锁不住还不存在的行，
// 两个事务都读到"没有计数行"时，后提交的 upsert 会把计数回写成 1。
// ON CONFLICT 的累加让数据库对冲突行排队，RETURNING 拿到的就是本事务
// 占到的名额；超过 20 整单回滚，自增一并撤销，计数永远不会越过上限。
func (r *Repo) CreateListInvite(ctx context.Context, inv *models.ListInvite, now time.Time) error {
	day := InviteDayKey(now)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Raw(fmt.Sprintf(`
		  INSERT INTO %s (list_id, day, count, updated_at)
		  VALUES (?, ?, 1, ?)
		  ON CONFLICT (list_id, day)
		  DO UPDATE SET count = %s.count + 1, updated_at = EXCLUDED.updated_at
		  RETURNING count
		`, models.InviteCounterTable, models.InviteCounterTable),
			inv.ListID, day, now).Scan(&next).Error; err != nil {
			return err
		}
		if next > InviteDailyLimit {
			return ErrInviteQuota
		}
		return tx.Create(inv).Error
	})
}

// RedeemInvite 兑换：校验-授权-扣减必须是一个原子单元。
// 锁住邀请行，并发兑换最后一次额度时只有一个事务能通过校验。
func (r *Repo) RedeemInvite(ctx context.Context, token, userID string, now time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.ListInvite
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", token).
			First(&inv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		if err != nil {
			return err
		}

		if now.After(inv.ExpiresAt) {
			return ErrInviteExpired
		}
		if inv.InvalidatedAt != nil || inv.UsesRemaining <= 0 {
			return ErrInviteExhausted
		}

		var list models.List
		if err := tx.First(&list, "id = ?", inv.ListID).Error; err != nil {
			return err
		}

		// owner 本来就是全权限，额度照样消耗
		if list.OwnerID != userID {
			m := models.ListMember{ListID: inv.ListID, UserID: userID, Role: inv.Role}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "list_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
			}).Create(&m).Error; err != nil {
				return err
			}
		}

		uses := inv.UsesRemaining - 1
		if uses <= 0 {
			// 固定写 0 并盖上作废时间戳，之后即使计数被误改也兑换不了
			return tx.Model(&models.ListInvite{}).
				Where("id = ?", inv.ID).
				Updates(map[string]interface{}{
					"uses_remaining": 0,
					"invalidated_at": &now,
				}).Error
		}
		return tx.Model(&models.ListInvite{}).
			Where("id = ?", inv.ID).
			Update("uses_remaining", uses).Error
	})
}

func (r *Repo) GetInviteByToken(ctx context.Context, token string) (*models.ListInvite, error) {
	var inv models.ListInvite
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
