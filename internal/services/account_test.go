package services

import (
	"io"
	"net/smtp"
	"path/filepath"
	"time"

	"github.com/javajoker/ecommerce-api/internal/i18n"
	"github.com/javajoker/ecommerce-api/internal/models"
	"github.com/javajoker/ecommerce-api/internal/testutil"
	"github.com/javajoker/ecommerce-api/internal/utils"
)

func (s *ServiceSuite) TestRegisterRejectsTakenIdentity() {
	svc := NewAuthService(s.db, s.cfg)

	user, err := svc.Register(s.ctx, &RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	s.Require().NoError(err)
	s.NotEqual("secret1", user.PasswordHash)
	s.NoError(user.CheckPassword("secret1"))

	_, err = svc.Register(s.ctx, &RegisterRequest{Username: "alice", Email: "ALICE@example.com", Password: "secret1"})
	var fieldErrs FieldErrors
	s.Require().ErrorAs(err, &fieldErrs)
	s.Equal(i18n.KeyAuthEmailTaken, fieldErrs["email"])
	s.Equal(i18n.KeyAuthUsernameTaken, fieldErrs["username"])

	_, err = svc.Register(s.ctx, &RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "secret1"})
	s.Require().ErrorAs(err, &fieldErrs)
	s.NotContains(fieldErrs, "username")

	s.Equal(int64(1), s.count(&models.User{}, ""))
}

func (s *ServiceSuite) TestLoginIssuesToken() {
	svc := NewAuthService(s.db, s.cfg)
	u := s.user("alice")

	resp, err := svc.Login(s.ctx, &LoginRequest{Email: "Alice@Example.com", Password: "password123"})
	s.Require().NoError(err)
	s.Equal(u.ID, resp.User.ID)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	s.Require().NoError(err)
	s.Equal(u.ID, claims.UserID)
	s.Equal("alice@example.com", claims.Email)

	_, err = svc.Login(s.ctx, &LoginRequest{Email: "alice@example.com", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = svc.Login(s.ctx, &LoginRequest{Email: "nobody@example.com", Password: "password123"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestUpdateProfile() {
	svc := NewUserService(s.db, s.storage)
	alice := s.user("alice")
	s.user("bob")

	_, err := svc.UpdateProfile(s.ctx, &UpdateProfileRequest{ID: alice.ID, Username: "bob", Email: "alice@example.com"})
	var fieldErrs FieldErrors
	s.Require().ErrorAs(err, &fieldErrs)
	s.Equal(i18n.KeyAuthUsernameTaken, fieldErrs["username"])

	updated, err := svc.UpdateProfile(s.ctx, &UpdateProfileRequest{ID: alice.ID, Username: "alice.b", Email: "alice@example.com"})
	s.Require().NoError(err)
	s.Equal("alice.b", updated.Username)

	_, err = svc.UpdateProfile(s.ctx, &UpdateProfileRequest{ID: 9999, Username: "x", Email: "x@example.com"})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceSuite) TestUpdatePassword() {
	svc := NewUserService(s.db, s.storage)
	auth := NewAuthService(s.db, s.cfg)
	u := s.user("alice")

	s.Require().NoError(svc.UpdatePassword(s.ctx, &UpdatePasswordRequest{ID: u.ID, Password: "newpass1"}))

	_, err := auth.Login(s.ctx, &LoginRequest{Email: u.Email, Password: "password123"})
	s.ErrorIs(err, ErrInvalidCredentials)
	_, err = auth.Login(s.ctx, &LoginRequest{Email: u.Email, Password: "newpass1"})
	s.NoError(err)

	s.ErrorIs(svc.UpdatePassword(s.ctx, &UpdatePasswordRequest{ID: 9999, Password: "newpass1"}), ErrUserNotFound)
}

func (s *ServiceSuite) TestUploadPhotoReplacesPrevious() {
	svc := NewUserService(s.db, s.storage)
	u := s.user("alice")

	_, _, err := svc.OpenPhoto(s.ctx, u.ID)
	s.ErrorIs(err, ErrPhotoNotFound)

	upload := func() *models.UserProfile {
		header := testutil.FileHeader(s.T(), "image", "me.png", testutil.PNG)
		file, err := header.Open()
		s.Require().NoError(err)
		defer file.Close()

		profile, err := svc.UploadPhoto(s.ctx, u.ID, file, header)
		s.Require().NoError(err)
		return profile
	}

	first := upload()
	second := upload()
	s.NotEqual(first.PhotoKey, second.PhotoKey)
	s.NoFileExists(filepath.Join(s.cfg.Storage.LocalPath, filepath.FromSlash(first.PhotoKey)))
	s.Equal(int64(1), s.count(&models.UserProfile{}, "user_id = ?", u.ID))

	body, contentType, err := svc.OpenPhoto(s.ctx, u.ID)
	s.Require().NoError(err)
	defer body.Close()
	data, err := io.ReadAll(body)
	s.Require().NoError(err)
	s.Equal(testutil.PNG, data)
	s.Equal("image/png", contentType)

	_, _, err = svc.OpenPhoto(s.ctx, 9999)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceSuite) TestDeleteAccount() {
	svc := NewUserService(s.db, s.storage)
	u := s.user("alice")

	header := testutil.FileHeader(s.T(), "image", "me.png", testutil.PNG)
	file, err := header.Open()
	s.Require().NoError(err)
	defer file.Close()
	profile, err := svc.UploadPhoto(s.ctx, u.ID, file, header)
	s.Require().NoError(err)

	other := s.user("bob")
	p := s.product("Lamp", "Lumen", "home", "10")
	for _, id := range []uint{u.ID, other.ID} {
		_, err = NewFavoriteService(s.db, s.notifications).Add(s.ctx, id, p.ID)
		s.Require().NoError(err)
		_, err = NewCartService(s.db).Add(s.ctx, &CartRequest{UserID: id, ProductID: p.ID}, `{}`)
		s.Require().NoError(err)
		s.Require().NoError(s.db.Create(&models.History{UserID: id, ProductID: p.ID, ViewedAt: time.Now()}).Error)
	}

	s.Require().NoError(svc.DeleteAccount(s.ctx, u.ID))
	s.Zero(s.count(&models.User{}, "id = ?", u.ID))
	for _, model := range []interface{}{&models.UserProfile{}, &models.Favorite{}, &models.Cart{}, &models.History{}, &models.Notification{}} {
		s.Zero(s.count(model, "user_id = ?", u.ID), "%T", model)
	}
	s.Equal(int64(1), s.count(&models.Favorite{}, "user_id = ?", other.ID))
	s.Equal(int64(1), s.count(&models.Cart{}, "user_id = ?", other.ID))
	s.Equal(int64(1), s.count(&models.History{}, "user_id = ?", other.ID))
	s.Equal(int64(1), s.count(&models.Notification{}, "user_id = ?", other.ID))
	s.NoFileExists(filepath.Join(s.cfg.Storage.LocalPath, filepath.FromSlash(profile.PhotoKey)))

	s.ErrorIs(svc.DeleteAccount(s.ctx, u.ID), ErrUserNotFound)
}

func (s *ServiceSuite) TestOtpLatestCodeWins() {
	svc := NewOtpService(s.db, s.cfg, s.notifications)

	first, err := svc.Generate(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Len(first.Code, 6)

	second, err := svc.Generate(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.NotEqual(first.Code, second.Code)
	s.Equal(int64(1), s.count(&models.Otp{}, "email = ?", "alice@example.com"))

	s.ErrorIs(svc.Verify(s.ctx, &VerifyOtpRequest{Email: "alice@example.com", Otp: first.Code}), ErrInvalidOTP)
	s.NoError(svc.Verify(s.ctx, &VerifyOtpRequest{Email: "alice@example.com", Otp: second.Code}))
	s.ErrorIs(svc.Verify(s.ctx, &VerifyOtpRequest{Email: "bob@example.com", Otp: second.Code}), ErrInvalidOTP)

	s.True(svc.ExposeCode())
}

func (s *ServiceSuite) TestOtpIgnoresEmailCase() {
	svc := NewOtpService(s.db, s.cfg, s.notifications)

	first, err := svc.Generate(s.ctx, "Alice@Example.com")
	s.Require().NoError(err)
	s.Equal("alice@example.com", first.Email)

	second, err := svc.Generate(s.ctx, " alice@example.COM ")
	s.Require().NoError(err)
	s.Equal(int64(1), s.count(&models.Otp{}, ""))

	s.ErrorIs(svc.Verify(s.ctx, &VerifyOtpRequest{Email: "ALICE@example.com", Otp: first.Code}), ErrInvalidOTP)
	s.NoError(svc.Verify(s.ctx, &VerifyOtpRequest{Email: "ALICE@example.com", Otp: second.Code}))
}

func (s *ServiceSuite) TestOtpIsMailedWhenSMTPConfigured() {
	s.cfg.Email.SMTPHost = "smtp.example.com"
	s.cfg.Email.SMTPPort = "587"
	s.cfg.Email.FromEmail = "shop@example.com"
	s.cfg.Email.FromName = "Shop"

	type sent struct {
		addr string
		to   []string
		msg  string
	}
	mails := make(chan sent, 1)
	s.notifications.sendMail = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		mails <- sent{addr: addr, to: to, msg: string(msg)}
		return nil
	}

	svc := NewOtpService(s.db, s.cfg, s.notifications)
	otp, err := svc.Generate(s.ctx, "alice@example.com")
	s.Require().NoError(err)

	select {
	case m := <-mails:
		s.Equal("smtp.example.com:587", m.addr)
		s.Equal([]string{"alice@example.com"}, m.to)
		s.Contains(m.msg, "Subject: Your verification code")
		s.Contains(m.msg, "From: Shop <shop@example.com>")
		s.Contains(m.msg, otp.Code)
	case <-time.After(2 * time.Second):
		s.Fail("otp email was not sent")
	}
}

func (s *ServiceSuite) TestNotificationListCountsAndClampsPage() {
	alice := s.user("alice")
	bob := s.user("bob")

	for i := 0; i < 25; i++ {
		_, err := s.notifications.Notify(s.ctx, s.db, Notice{
			UserID:     alice.ID,
			Type:       models.NotificationTypeGeneral,
			TitleKey:   i18n.KeyNotifyFavoriteTitle,
			MessageKey: i18n.KeyNotifyFavoriteMessage,
			Args:       []interface{}{"Lamp"},
		})
		s.Require().NoError(err)
	}
	bobNote, err := s.notifications.Notify(s.ctx, s.db, Notice{UserID: bob.ID, TitleKey: "t", MessageKey: "m"})
	s.Require().NoError(err)

	page, err := s.notifications.List(s.ctx, alice.ID, 1)
	s.Require().NoError(err)
	s.Len(page.Notifications, NotificationsPerPage)
	s.Equal(2, page.TotalPages)
	s.Equal(int64(25), page.TotalCount)
	s.Equal(int64(25), page.UnreadCount)
	s.Equal("Added to favorites", page.Notifications[0].Title)

	s.Require().NoError(s.notifications.MarkRead(s.ctx, alice.ID, page.Notifications[0].ID))

	page, err = s.notifications.List(s.ctx, alice.ID, 7)
	s.Require().NoError(err)
	s.Equal(2, page.CurrentPage)
	s.Len(page.Notifications, 5)
	s.Equal(int64(24), page.UnreadCount)

	page, err = s.notifications.List(s.ctx, alice.ID, 0)
	s.Require().NoError(err)
	s.Equal(1, page.CurrentPage)

	_, err = s.notifications.List(s.ctx, 9999, 1)
	s.ErrorIs(err, ErrUserNotFound)

	s.ErrorIs(s.notifications.MarkRead(s.ctx, alice.ID, bobNote.ID), ErrNotificationNotFound)
	s.ErrorIs(s.notifications.Delete(s.ctx, alice.ID, bobNote.ID), ErrNotificationNotFound)
}

func (s *ServiceSuite) TestNotificationEmptyListHasOnePage() {
	u := s.user("alice")

	page, err := s.notifications.List(s.ctx, u.ID, 3)
	s.Require().NoError(err)
	s.Empty(page.Notifications)
	s.Equal(1, page.TotalPages)
	s.Equal(1, page.CurrentPage)
	s.Zero(page.UnreadCount)
}

func (s *ServiceSuite) TestNotificationMarkAllAndDelete() {
	alice := s.user("alice")
	bob := s.user("bob")

	var last *models.Notification
	for _, uid := range []uint{alice.ID, alice.ID, alice.ID, bob.ID} {
		n, err := s.notifications.Notify(s.ctx, s.db, Notice{UserID: uid, TitleKey: "t", MessageKey: "m"})
		s.Require().NoError(err)
		if uid == alice.ID {
			last = n
		}
	}
	s.Require().NoError(s.notifications.MarkRead(s.ctx, alice.ID, last.ID))

	updated, err := s.notifications.MarkAllRead(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), updated)

	updated, err = s.notifications.MarkAllRead(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Zero(updated)
	s.Equal(int64(1), s.count(&models.Notification{}, "user_id = ? AND is_read = ?", bob.ID, false))

	s.Require().NoError(s.notifications.Delete(s.ctx, alice.ID, last.ID))
	s.ErrorIs(s.notifications.Delete(s.ctx, alice.ID, last.ID), ErrNotificationNotFound)
	s.Equal(int64(2), s.count(&models.Notification{}, "user_id = ?", alice.ID))
}
