package userintegrationtests

import (
	"sort"
	"sync"
	"testing"

	userservice "github.com/Black-And-White-Club/xp-bot/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	t.Run("get unknown user is not found", func(t *testing.T) {
		deps := SetupTestUserService(t)
		_, err := deps.DB.GetGuildUser(deps.Ctx, 1, 1)
		assert.ErrorIs(t, err, userdb.ErrNotFound)
	})

	t.Run("create then duplicate conflicts", func(t *testing.T) {
		deps := SetupTestUserService(t)

		created, err := deps.DB.CreateGuildUser(deps.Ctx, 1, 2, 0)
		require.NoError(t, err)
		assert.Zero(t, created.XP)
		assert.False(t, created.Blocked)

		_, err = deps.DB.CreateGuildUser(deps.Ctx, 1, 2, 0)
		assert.ErrorIs(t, err, userdb.ErrConflict)

		// same user in another guild is a separate row
		_, err = deps.DB.CreateGuildUser(deps.Ctx, 1, 3, 0)
		assert.NoError(t, err)
	})

	t.Run("set xp is update only", func(t *testing.T) {
		deps := SetupTestUserService(t)

		_, err := deps.DB.SetGuildUserXP(deps.Ctx, 1, 2, 50)
		assert.ErrorIs(t, err, userdb.ErrNotFound)

		_, err = deps.DB.CreateGuildUser(deps.Ctx, 1, 2, 0)
		require.NoError(t, err)
		updated, err := deps.DB.SetGuildUserXP(deps.Ctx, 1, 2, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(50), updated.XP)
	})

	t.Run("add xp autovivifies and accumulates", func(t *testing.T) {
		deps := SetupTestUserService(t)

		first, err := deps.DB.AddGuildUserXP(deps.Ctx, 1, 2, 15)
		require.NoError(t, err)
		assert.Equal(t, int64(15), first.XP)
		assert.False(t, first.Blocked)

		second, err := deps.DB.AddGuildUserXP(deps.Ctx, 1, 2, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(35), second.XP)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("concurrent add xp loses nothing", func(t *testing.T) {
		deps := SetupTestUserService(t)

		const workers = 40
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := deps.DB.AddGuildUserXP(deps.Ctx, 5, 6, 7)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := deps.DB.GetGuildUser(deps.Ctx, 5, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(workers*7), got.XP)

		count, err := deps.BunDB.NewSelect().Model((*userdb.GuildUser)(nil)).
			Where("user_id = ? AND guild_id = ?", 5, 6).Count(deps.Ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("top n orders by xp descending", func(t *testing.T) {
		deps := SetupTestUserService(t)

		for i, xp := range []int64{5, 30, 10, 30} {
			_, err := deps.DB.CreateGuildUser(deps.Ctx, int64(i+1), 9, xp)
			require.NoError(t, err)
		}
		// noise in another guild
		_, err := deps.DB.CreateGuildUser(deps.Ctx, 1, 10, 1000)
		require.NoError(t, err)

		top, err := deps.DB.TopNGuildUserXP(deps.Ctx, 9, 3)
		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, []int64{30, 30, 10}, []int64{top[0].XP, top[1].XP, top[2].XP})
		// ties keep insertion order
		assert.Equal(t, int64(2), top[0].UserID)
		assert.Equal(t, int64(4), top[1].UserID)

		none, err := deps.DB.TopNGuildUserXP(deps.Ctx, 9, 0)
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := deps.DB.GetGuildUsers(deps.Ctx, 9)
		require.NoError(t, err)
		ids := make([]int64, 0, len(all))
		for _, u := range all {
			ids = append(ids, u.UserID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	})
}

func TestUserService_Coherence(t *testing.T) {
	t.Run("read after layer write sees the write", func(t *testing.T) {
		deps := SetupTestUserService(t)

		_, err := deps.Service.CreateGuildUser(deps.Ctx, 1, 2)
		require.NoError(t, err)
		_, err = deps.Service.GetGuildUser(deps.Ctx, 1, 2)
		require.NoError(t, err)

		_, err = deps.Service.SetGuildUserXP(deps.Ctx, 1, 2, 400)
		require.NoError(t, err)
		got, err := deps.Service.GetGuildUser(deps.Ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(400), got.XP)

		_, err = deps.Service.AddGuildUserXP(deps.Ctx, 1, 2, 25)
		require.NoError(t, err)
		got, err = deps.Service.GetGuildUser(deps.Ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(425), got.XP)
	})

	t.Run("failed set leaves the entry absent", func(t *testing.T) {
		deps := SetupTestUserService(t)

		_, err := deps.Service.SetGuildUserXP(deps.Ctx, 8, 9, 10)
		assert.ErrorIs(t, err, userservice.ErrUserNotFound)

		var cached userdb.GuildUser
		hit, err := deps.Cache.Get(deps.Ctx, ttlcache.UserKey(9, 8), &cached)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("negative add touches neither store nor cache", func(t *testing.T) {
		deps := SetupTestUserService(t)

		_, err := deps.Service.AddGuildUserXP(deps.Ctx, 6, 7, -50)
		assert.ErrorIs(t, err, userservice.ErrNegativeXP)

		_, err = deps.DB.GetGuildUser(deps.Ctx, 6, 7)
		assert.ErrorIs(t, err, userdb.ErrNotFound)

		var cached userdb.GuildUser
		hit, err := deps.Cache.Get(deps.Ctx, ttlcache.UserKey(7, 6), &cached)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("message grant honours cooldown", func(t *testing.T) {
		deps := SetupTestUserService(t, userservice.WithMessageXPRange(20, 20))

		grant, err := deps.Service.GrantMessageXP(deps.Ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, userservice.SkipNone, grant.Skipped)
		assert.Equal(t, int64(20), grant.CurrentXP)

		grant, err = deps.Service.GrantMessageXP(deps.Ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, userservice.SkipCooldown, grant.Skipped)

		stored, err := deps.DB.GetGuildUser(deps.Ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(20), stored.XP)
	})

	t.Run("blocked users earn nothing", func(t *testing.T) {
		deps := SetupTestUserService(t)

		_, err := deps.DB.CreateGuildUser(deps.Ctx, 3, 2, 10)
		require.NoError(t, err)
		_, err = deps.BunDB.NewUpdate().Table("users").
			Set("blocked = TRUE").
			Where("user_id = ? AND guild_id = ?", 3, 2).
			Exec(deps.Ctx)
		require.NoError(t, err)

		grant, err := deps.Service.GrantMessageXP(deps.Ctx, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, userservice.SkipBlocked, grant.Skipped)
	})
}
