package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	memoryRepo "medibook/database/repository/memory"
	"medibook/models"
	"medibook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	folder string
	body   string
	err    error
}

func (f *fakeImageStore) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(file)
	f.folder = folder
	f.body = string(data)
	return "https://img.test/" + folder + "/avatar.png", nil
}

func newUserService(images *fakeImageStore) *DefaultUserService {
	utils.SetJWTSecret("test-secret")
	return &DefaultUserService{
		Repo:     memoryRepo.NewStore().Patients(),
		Images:   images,
		TokenTTL: time.Hour,
	}
}

func TestRegisterPasswordPolicy(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(&fakeImageStore{})

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "1234567"})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "12345678"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.Subject)
	assert.Equal(t, utils.RolePatient, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(&fakeImageStore{})

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@mail.test", Password: "password1"}},
		{"blank name", RegisterRequest{Name: "  ", Email: "a@mail.test", Password: "password1"}},
		{"missing email", RegisterRequest{Name: "A", Password: "password1"}},
		{"invalid email", RegisterRequest{Name: "A", Email: "not-an-email", Password: "password1"}},
		{"missing password", RegisterRequest{Name: "A", Email: "a@mail.test"}},
		{"password over bcrypt limit", RegisterRequest{Name: "A", Email: "a@mail.test", Password: strings.Repeat("p", 73)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.Equal(t, utils.KindValidation, utils.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(&fakeImageStore{})

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "ANN@mail.test", Password: "password2"})
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestRegisterDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(&fakeImageStore{})

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "password1"})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPhone, profile.Phone)
	assert.Equal(t, models.NotSelected, profile.Gender)
	assert.Equal(t, models.NotSelected, profile.DOB)
	assert.NotEqual(t, "password1", profile.PasswordHash)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(&fakeImageStore{})

	_, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "password1"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "Ann@Mail.test", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, "ann@mail.test", "wrong-password")
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))

	_, err = svc.Login(ctx, "nobody@mail.test", "password1")
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	images := &fakeImageStore{}
	svc := newUserService(images)

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "password1"})
	require.NoError(t, err)

	phone := "5551234567"
	updated, err := svc.UpdateProfile(ctx, resp.ID, models.PatientUpdate{Phone: &phone}, strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "5551234567", updated.Phone)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "https://img.test/patients/avatar.png", updated.Image)
	assert.Equal(t, "patients", images.folder)
	assert.Equal(t, "png-bytes", images.body)

	empty := ""
	_, err = svc.UpdateProfile(ctx, resp.ID, models.PatientUpdate{Name: &empty}, nil)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.UpdateProfile(ctx, "missing", models.PatientUpdate{Phone: &phone}, nil)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestUpdateProfileUploadFailure(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(&fakeImageStore{err: errors.New("cloud down")})

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@mail.test", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, resp.ID, models.PatientUpdate{}, strings.NewReader("png"))
	assert.Equal(t, utils.KindUpstream, utils.KindOf(err))
}
