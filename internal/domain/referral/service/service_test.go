package service

import (
	"context"
	"testing"
	"time"

	"github.com/uzquiz/quizbot/internal/domain/model"
)

// fakeReferralRepo — хранилище пользователей в памяти для тестов.
type fakeReferralRepo struct {
	users map[int64]*model.User
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{users: make(map[int64]*model.User)}
}

func (f *fakeReferralRepo) GetUser(_ context.Context, userID int64) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeReferralRepo) Register(_ context.Context, userID int64, invitedBy *int64) (bool, error) {
	if _, ok := f.users[userID]; ok {
		return false, nil
	}
	f.users[userID] = &model.User{UserID: userID, InvitedBy: invitedBy, JoinedAt: time.Now()}
	if invitedBy != nil {
		if inviter, ok := f.users[*invitedBy]; ok {
			inviter.InviteCount++
		}
	}
	return true, nil
}

func (f *fakeReferralRepo) ForceUnlock(_ context.Context, userID int64, inviteCount int) error {
	if user, ok := f.users[userID]; ok {
		user.InviteCount = inviteCount
		return nil
	}
	f.users[userID] = &model.User{UserID: userID, InviteCount: inviteCount, JoinedAt: time.Now()}
	return nil
}

func (f *fakeReferralRepo) CountUsers(_ context.Context) (int, error) {
	return len(f.users), nil
}

func ptr(v int64) *int64 { return &v }

// TestGetOrRegister_NewUser проверяет первую регистрацию без пригласившего.
func TestGetOrRegister_NewUser(t *testing.T) {
	svc := NewReferralService(newFakeReferralRepo())

	isNew, count, err := svc.GetOrRegister(context.Background(), 100, nil)
	if err != nil {
		t.Fatalf("GetOrRegister вернул ошибку: %v", err)
	}
	if !isNew || count != 0 {
		t.Errorf("Ожидалось isNew=true count=0, получено isNew=%v count=%d", isNew, count)
	}
}

// TestGetOrRegister_CreditsInviterOnce проверяет, что пригласивший кредитуется
// ровно один раз: повторный /start с тем же inviter счётчик не меняет.
func TestGetOrRegister_CreditsInviterOnce(t *testing.T) {
	repo := newFakeReferralRepo()
	svc := NewReferralService(repo)
	ctx := context.Background()

	if _, _, err := svc.GetOrRegister(ctx, 100, nil); err != nil {
		t.Fatalf("GetOrRegister вернул ошибку: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := svc.GetOrRegister(ctx, 200, ptr(100)); err != nil {
			t.Fatalf("GetOrRegister вернул ошибку: %v", err)
		}
	}

	count, err := svc.InviteCount(ctx, 100)
	if err != nil {
		t.Fatalf("InviteCount вернул ошибку: %v", err)
	}
	if count != 1 {
		t.Errorf("Ожидался счётчик 1, получен %d", count)
	}
}

// TestGetOrRegister_SelfInvite проверяет, что самоприглашение игнорируется,
// а регистрация при этом проходит.
func TestGetOrRegister_SelfInvite(t *testing.T) {
	repo := newFakeReferralRepo()
	svc := NewReferralService(repo)

	isNew, _, err := svc.GetOrRegister(context.Background(), 100, ptr(100))
	if err != nil {
		t.Fatalf("GetOrRegister вернул ошибку: %v", err)
	}
	if !isNew {
		t.Error("Ожидалась регистрация нового пользователя")
	}
	if repo.users[100].InvitedBy != nil {
		t.Errorf("Самоприглашение должно сбрасываться в nil, получено %v", *repo.users[100].InvitedBy)
	}
	if repo.users[100].InviteCount != 0 {
		t.Errorf("Самоприглашение не должно начислять приглашение, счётчик %d", repo.users[100].InviteCount)
	}
}

// TestGetOrRegister_UnknownInviter проверяет, что незарегистрированный
// пригласивший не мешает регистрации.
func TestGetOrRegister_UnknownInviter(t *testing.T) {
	svc := NewReferralService(newFakeReferralRepo())

	isNew, _, err := svc.GetOrRegister(context.Background(), 100, ptr(999))
	if err != nil {
		t.Fatalf("GetOrRegister вернул ошибку: %v", err)
	}
	if !isNew {
		t.Error("Ожидалась регистрация нового пользователя")
	}
}

// TestGetOrRegister_ExistingReturnsCount проверяет повторное обращение.
func TestGetOrRegister_ExistingReturnsCount(t *testing.T) {
	repo := newFakeReferralRepo()
	repo.users[100] = &model.User{UserID: 100, InviteCount: 2}
	svc := NewReferralService(repo)

	isNew, count, err := svc.GetOrRegister(context.Background(), 100, nil)
	if err != nil {
		t.Fatalf("GetOrRegister вернул ошибку: %v", err)
	}
	if isNew || count != 2 {
		t.Errorf("Ожидалось isNew=false count=2, получено isNew=%v count=%d", isNew, count)
	}
}

// TestIsUnlocked_Threshold проверяет порог открытия доступа.
func TestIsUnlocked_Threshold(t *testing.T) {
	repo := newFakeReferralRepo()
	svc := NewReferralService(repo)
	ctx := context.Background()
	const adminID = int64(1)

	cases := []struct {
		count int
		want  bool
	}{
		{0, false},
		{InviteThreshold - 1, false},
		{InviteThreshold, true},
		{InviteThreshold + 2, true},
	}

	for _, tc := range cases {
		repo.users[100] = &model.User{UserID: 100, InviteCount: tc.count}
		got, err := svc.IsUnlocked(ctx, 100, adminID)
		if err != nil {
			t.Fatalf("IsUnlocked вернул ошибку: %v", err)
		}
		if got != tc.want {
			t.Errorf("Счётчик %d: ожидалось %v, получено %v", tc.count, tc.want, got)
		}
	}
}

// TestIsUnlocked_Admin проверяет, что оператору доступ открыт всегда.
func TestIsUnlocked_Admin(t *testing.T) {
	svc := NewReferralService(newFakeReferralRepo())

	unlocked, err := svc.IsUnlocked(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("IsUnlocked вернул ошибку: %v", err)
	}
	if !unlocked {
		t.Error("Оператор должен иметь доступ без приглашений")
	}
}

// TestForceUnlock проверяет принудительное открытие доступа.
func TestForceUnlock(t *testing.T) {
	repo := newFakeReferralRepo()
	svc := NewReferralService(repo)
	ctx := context.Background()

	if err := svc.ForceUnlock(ctx, 100); err != nil {
		t.Fatalf("ForceUnlock вернул ошибку: %v", err)
	}

	unlocked, err := svc.IsUnlocked(ctx, 100, 1)
	if err != nil {
		t.Fatalf("IsUnlocked вернул ошибку: %v", err)
	}
	if !unlocked {
		t.Error("После ForceUnlock доступ должен быть открыт")
	}
}

// TestCountUsers проверяет подсчёт зарегистрированных пользователей.
func TestCountUsers(t *testing.T) {
	repo := newFakeReferralRepo()
	svc := NewReferralService(repo)
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		if _, _, err := svc.GetOrRegister(ctx, id, nil); err != nil {
			t.Fatalf("GetOrRegister вернул ошибку: %v", err)
		}
	}

	count, err := svc.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers вернул ошибку: %v", err)
	}
	if count != 5 {
		t.Errorf("Ожидалось 5 пользователей, получено %d", count)
	}
}
