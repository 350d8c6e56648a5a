package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"persona/internal/persona/models"
	"persona/internal/persona/service/mocks"
	id "persona/pkg/domain"
	dErrors "persona/pkg/domain-errors"
	"persona/pkg/platform/sentinel"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockPersonaStore, *mocks.MockEmailPolicy, *mocks.MockAuditPublisher) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPersonaStore(ctrl)
	policy := mocks.NewMockEmailPolicy(ctrl)
	auditor := mocks.NewMockAuditPublisher(ctrl)
	svc := New(store, policy, WithAuditPublisher(auditor))
	return svc, store, policy, auditor
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	caller := id.UserCaller(id.UserID(uuid.New()))

	t.Run("success reserves before inserting and audits", func(t *testing.T) {
		svc, store, policy, auditor := newServiceWithMocks(t)

		req := &models.CreatePersonaRequest{
			Email:   "Ada@MyPersona.TK",
			Profile: models.Profile{Alias: strPtr("ghost")},
		}

		gomock.InOrder(
			policy.EXPECT().AssertDomainAllowed("ada@mypersona.tk").Return(nil),
			policy.EXPECT().AssertAvailable(gomock.Any(), "ada@mypersona.tk", caller.UserID).Return(nil),
			policy.EXPECT().Reserve(gomock.Any(), "ada@mypersona.tk", caller.UserID).Return(nil),
			store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
			auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil),
		)

		p, err := svc.Create(ctx, caller, req)
		require.NoError(t, err)
		assert.Equal(t, caller.UserID, p.OwnerID)
		assert.Equal(t, "ada@mypersona.tk", p.Email, "email is normalized before storage")
		assert.Equal(t, "ghost", p.Alias)
	})

	t.Run("missing email fails validation before any collaborator is consulted", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.Create(ctx, caller, &models.CreatePersonaRequest{
			Profile: models.Profile{Alias: strPtr("ghost")},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "email", dErrors.FieldOf(err))
	})

	t.Run("invalid profile field stops before the email policy", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.Create(ctx, caller, &models.CreatePersonaRequest{
			Email:   "ada@mypersona.tk",
			Profile: models.Profile{Age: intPtr(-1)},
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("disallowed domain stops before the ledger", func(t *testing.T) {
		svc, _, policy, _ := newServiceWithMocks(t)

		policy.EXPECT().AssertDomainAllowed("ada@gmail.com").
			Return(dErrors.New(dErrors.CodeDomainNotAllowed, "email domain \"gmail.com\" is not allowed"))

		_, err := svc.Create(ctx, caller, &models.CreatePersonaRequest{Email: "ada@gmail.com"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDomainNotAllowed))
	})

	t.Run("availability conflict stops before reserve and insert", func(t *testing.T) {
		svc, _, policy, _ := newServiceWithMocks(t)

		gomock.InOrder(
			policy.EXPECT().AssertDomainAllowed("ada@mypersona.tk").Return(nil),
			policy.EXPECT().AssertAvailable(gomock.Any(), "ada@mypersona.tk", caller.UserID).
				Return(dErrors.New(dErrors.CodeConflict, "email is already in use")),
		)

		_, err := svc.Create(ctx, caller, &models.CreatePersonaRequest{Email: "ada@mypersona.tk"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("lost reservation race stops before insert", func(t *testing.T) {
		svc, _, policy, _ := newServiceWithMocks(t)

		gomock.InOrder(
			policy.EXPECT().AssertDomainAllowed("ada@mypersona.tk").Return(nil),
			policy.EXPECT().AssertAvailable(gomock.Any(), "ada@mypersona.tk", caller.UserID).Return(nil),
			policy.EXPECT().Reserve(gomock.Any(), "ada@mypersona.tk", caller.UserID).
				Return(dErrors.New(dErrors.CodeConflict, "email is already in use")),
		)

		_, err := svc.Create(ctx, caller, &models.CreatePersonaRequest{Email: "ada@mypersona.tk"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("insert uniqueness backstop maps to the generic conflict", func(t *testing.T) {
		svc, store, policy, _ := newServiceWithMocks(t)

		gomock.InOrder(
			policy.EXPECT().AssertDomainAllowed("ada@mypersona.tk").Return(nil),
			policy.EXPECT().AssertAvailable(gomock.Any(), "ada@mypersona.tk", caller.UserID).Return(nil),
			policy.EXPECT().Reserve(gomock.Any(), "ada@mypersona.tk", caller.UserID).Return(nil),
			store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed),
		)

		_, err := svc.Create(ctx, caller, &models.CreatePersonaRequest{Email: "ada@mypersona.tk"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("system caller may not create personas", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.Create(ctx, id.SystemCaller(), &models.CreatePersonaRequest{Email: "ada@mypersona.tk"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("anonymous caller is unauthorized", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.Create(ctx, id.Caller{}, &models.CreatePersonaRequest{Email: "ada@mypersona.tk"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestService_Show(t *testing.T) {
	ctx := context.Background()
	caller := id.UserCaller(id.UserID(uuid.New()))
	personaID := id.PersonaID(uuid.New())

	t.Run("returns an owned persona", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().FindByID(gomock.Any(), personaID).
			Return(&models.Persona{ID: personaID, OwnerID: caller.UserID}, nil)

		p, err := svc.Show(ctx, caller, personaID)
		require.NoError(t, err)
		assert.Equal(t, personaID, p.ID)
	})

	t.Run("missing and not-owned are the same not_found", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().FindByID(gomock.Any(), personaID).Return(nil, sentinel.ErrNotFound)
		_, errMissing := svc.Show(ctx, caller, personaID)

		store.EXPECT().FindByID(gomock.Any(), personaID).
			Return(&models.Persona{ID: personaID, OwnerID: id.UserID(uuid.New())}, nil)
		_, errForeign := svc.Show(ctx, caller, personaID)

		require.Error(t, errMissing)
		require.Error(t, errForeign)
		assert.True(t, dErrors.HasCode(errMissing, dErrors.CodeNotFound))
		assert.True(t, dErrors.HasCode(errForeign, dErrors.CodeNotFound))
		assert.Equal(t, errMissing.Error(), errForeign.Error(),
			"responses must not reveal whether the record exists")
	})

	t.Run("system caller is rejected", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.Show(ctx, id.SystemCaller(), personaID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func TestService_ShowByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("system caller bypasses ownership scoping", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().FindByEmail(gomock.Any(), "ada@mypersona.tk").
			Return(&models.Persona{Email: "ada@mypersona.tk"}, nil)

		p, err := svc.ShowByEmail(ctx, id.SystemCaller(), "Ada@MyPersona.TK")
		require.NoError(t, err)
		assert.Equal(t, "ada@mypersona.tk", p.Email)
	})

	t.Run("user callers are forbidden even for their own email", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.ShowByEmail(ctx, id.UserCaller(id.UserID(uuid.New())), "ada@mypersona.tk")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("unknown email is not_found", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().FindByEmail(gomock.Any(), "ghost@mypersona.tk").Return(nil, sentinel.ErrNotFound)

		_, err := svc.ShowByEmail(ctx, id.SystemCaller(), "ghost@mypersona.tk")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestService_Edit(t *testing.T) {
	ctx := context.Background()
	caller := id.UserCaller(id.UserID(uuid.New()))
	personaID := id.PersonaID(uuid.New())

	t.Run("empty update is rejected before the store", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.Edit(ctx, caller, personaID, &models.EditPersonaRequest{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("update applies and the record is reloaded", func(t *testing.T) {
		svc, store, _, auditor := newServiceWithMocks(t)

		req := &models.EditPersonaRequest{Profile: models.Profile{Alias: strPtr("spectre")}}
		gomock.InOrder(
			store.EXPECT().UpdateProfile(gomock.Any(), personaID, caller.UserID, &req.Profile).Return(nil),
			auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil),
			store.EXPECT().FindByID(gomock.Any(), personaID).
				Return(&models.Persona{ID: personaID, OwnerID: caller.UserID, Alias: "spectre"}, nil),
		)

		p, err := svc.Edit(ctx, caller, personaID, req)
		require.NoError(t, err)
		assert.Equal(t, "spectre", p.Alias)
	})

	t.Run("scoped update miss is not_found", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		req := &models.EditPersonaRequest{Profile: models.Profile{Alias: strPtr("spectre")}}
		store.EXPECT().UpdateProfile(gomock.Any(), personaID, caller.UserID, &req.Profile).
			Return(sentinel.ErrNotFound)

		_, err := svc.Edit(ctx, caller, personaID, req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	caller := id.UserCaller(id.UserID(uuid.New()))
	personaID := id.PersonaID(uuid.New())

	t.Run("removes an owned persona and audits", func(t *testing.T) {
		svc, store, _, auditor := newServiceWithMocks(t)

		gomock.InOrder(
			store.EXPECT().Delete(gomock.Any(), personaID, caller.UserID).Return(nil),
			auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil),
		)

		require.NoError(t, svc.Delete(ctx, caller, personaID))
	})

	t.Run("scoped miss is not_found", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().Delete(gomock.Any(), personaID, caller.UserID).Return(sentinel.ErrNotFound)

		err := svc.Delete(ctx, caller, personaID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("store failure surfaces as internal", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().Delete(gomock.Any(), personaID, caller.UserID).Return(errors.New("connection reset"))

		err := svc.Delete(ctx, caller, personaID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	caller := id.UserCaller(id.UserID(uuid.New()))

	t.Run("returns the owner's personas", func(t *testing.T) {
		svc, store, _, _ := newServiceWithMocks(t)

		store.EXPECT().ListByOwner(gomock.Any(), caller.UserID).
			Return([]*models.Persona{{OwnerID: caller.UserID}}, nil)

		list, err := svc.List(ctx, caller)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("system caller is rejected", func(t *testing.T) {
		svc, _, _, _ := newServiceWithMocks(t)

		_, err := svc.List(ctx, id.SystemCaller())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}
