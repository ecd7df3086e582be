package preparedness_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/preparedness"
	"github.com/shenikar/family_crisis_hub/internal/preparedness/mocks"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMonitor bool

func (f fakeMonitor) Online() bool { return bool(f) }

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestService_PlanIsFetchedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().GetPlan(gomock.Any()).Return(preparedness.DefaultPlan(), nil).Times(1)

	svc := preparedness.NewService(repo, fakeMonitor(true), silentLogger())
	for i := 0; i < 3; i++ {
		plan, err := svc.Plan(context.Background())
		require.NoError(t, err)
		assert.Len(t, plan.Items, 6)
	}
}

func TestService_ToggleConfirmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().GetPlan(gomock.Any()).Return(preparedness.DefaultPlan(), nil)
	repo.EXPECT().UpdateItemStatus(gomock.Any(), "item_1", models.ItemComplete).
		Return(models.PreparednessItem{ID: "item_1", Status: models.ItemComplete}, nil)

	svc := preparedness.NewService(repo, fakeMonitor(true), silentLogger())
	plan, err := svc.Toggle(context.Background(), "item_1", "")
	require.NoError(t, err)
	assert.Equal(t, models.ItemComplete, plan.Items[0].Status)
	assert.Equal(t, 50, plan.Score())
}

func TestService_ToggleRevertsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().GetPlan(gomock.Any()).Return(preparedness.DefaultPlan(), nil)
	repo.EXPECT().UpdateItemStatus(gomock.Any(), "item_3", models.ItemIncomplete).
		Return(models.PreparednessItem{}, errors.New("backend down"))

	svc := preparedness.NewService(repo, fakeMonitor(true), silentLogger())
	plan, err := svc.Toggle(context.Background(), "item_3", models.ItemIncomplete)
	require.Error(t, err)
	assert.Equal(t, models.ItemComplete, plan.Items[2].Status)

	again, err := svc.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ItemComplete, again.Items[2].Status)
}

func TestService_ToggleOfflineMakesNoCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)

	svc := preparedness.NewService(repo, fakeMonitor(false), silentLogger())
	_, err := svc.Toggle(context.Background(), "item_1", "")
	assert.ErrorIs(t, err, preparedness.ErrOffline)
}

func TestService_ToggleUnknownItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().GetPlan(gomock.Any()).Return(preparedness.DefaultPlan(), nil)

	svc := preparedness.NewService(repo, fakeMonitor(true), silentLogger())
	_, err := svc.Toggle(context.Background(), "item_42", "")
	assert.ErrorIs(t, err, preparedness.ErrItemNotFound)
}

func TestStateRepository_PersistsChanges(t *testing.T) {
	backend := statestore.NewMemoryBackend()
	binding := statestore.Bind[models.PreparednessPlan](backend, statestore.KeyPreparednessPlan, silentLogger())
	repo := preparedness.NewStateRepository(binding)
	ctx := context.Background()

	item, err := repo.UpdateItemStatus(ctx, "item_5", models.ItemComplete)
	require.NoError(t, err)
	assert.Equal(t, "Drop, Cover, and Hold On Drill", item.Name)

	reopened := preparedness.NewStateRepository(statestore.Bind[models.PreparednessPlan](backend, statestore.KeyPreparednessPlan, silentLogger()))
	plan, err := reopened.GetPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ItemComplete, plan.Items[4].Status)

	_, err = repo.UpdateItemStatus(ctx, "missing", models.ItemComplete)
	assert.ErrorIs(t, err, preparedness.ErrItemNotFound)
}
