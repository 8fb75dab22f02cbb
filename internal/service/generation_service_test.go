package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedUser(f *fakeUowFactory, credits float64) *entity.User {
	u := &entity.User{
		Id:        uuid.New(),
		Email:     "user@example.com",
		Credits:   credits,
		CreatedAt: time.Now(),
	}
	f.uow.store.users[u.Id] = u
	return u
}

func TestTextToImageChargesAndRecords(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 10.0)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.png"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	res, err := svc.TextToImage(context.Background(), user.Id, &dto.TextToImageRequest{
		Prompt:  "a red fox in the snow",
		Quality: "standard",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.25, res.Cost)
	assert.Equal(t, "https://cdn.example.com/out.png", res.ResultURL)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 9.75, factory.uow.store.users[user.Id].Credits)
	assert.Len(t, factory.uow.store.generations, 1)
	for _, g := range factory.uow.store.generations {
		assert.Equal(t, entity.GenerationKindTextToImage, g.Kind)
		assert.Equal(t, entity.GenerationStatusCompleted, g.Status)
		assert.Equal(t, 0.25, g.Cost)
	}
}

func TestTextToImageMultipleImages(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 10.0)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.png"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	res, err := svc.TextToImage(context.Background(), user.Id, &dto.TextToImageRequest{
		Prompt:    "portrait",
		Quality:   "4k",
		NumImages: 4,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2.0, res.Cost)
	assert.Equal(t, 8.0, factory.uow.store.users[user.Id].Credits)
}

func TestInsufficientCreditsRejectsBeforeProvider(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 1.0)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.mp4"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	// 1080p x 5s costs 2.0, balance is 1.0
	_, err := svc.ImageToVideo(context.Background(), user.Id, &dto.ImageToVideoRequest{
		Prompt:       "waves",
		ImageDataURL: "data:image/png;base64,xxx",
		Resolution:   "1080p",
		Duration:     5,
	})

	var insufficient *InsufficientCreditsError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2.0, insufficient.Cost)
	assert.Equal(t, 1.0, insufficient.Balance)
	assert.Equal(t, 0, provider.calls, "provider must not be called when balance is short")
	assert.Equal(t, 1.0, factory.uow.store.users[user.Id].Credits)
	assert.Empty(t, factory.uow.store.generations)
}

func TestProviderFailureLeavesBalanceUntouched(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 5.0)
	provider := &fakeProvider{failWith: errors.New("upstream timeout")}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	_, err := svc.TextToImage(context.Background(), user.Id, &dto.TextToImageRequest{
		Prompt: "a lighthouse at dusk",
	})

	var failed *GenerationFailedError
	assert.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 5.0, factory.uow.store.users[user.Id].Credits)
	assert.Empty(t, factory.uow.store.generations, "failed generations are not recorded")
}

func TestDebitRaceDiscardsArtifact(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 0.5)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.png"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	// A concurrent spend drains the balance between the pre-check and the
	// conditional debit.
	factory.uow.onDebit = func() {
		factory.uow.store.users[user.Id].Credits = 0
	}

	_, err := svc.ImageToImage(context.Background(), user.Id, &dto.ImageToImageRequest{
		Prompt:       "make it watercolor",
		ImageDataURL: "data:image/png;base64,xxx",
	})

	var insufficient *InsufficientCreditsError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0.0, insufficient.Balance, "must report the drained balance, not the pre-check one")
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, factory.uow.store.generations)
}

func TestImageToVideoUnknownComboFallsBack(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 10.0)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.mp4"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	res, err := svc.ImageToVideo(context.Background(), user.Id, &dto.ImageToVideoRequest{
		Prompt:       "slow pan",
		ImageDataURL: "data:image/png;base64,xxx",
		Resolution:   "4k",
		Duration:     5,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1.0, res.Cost)
	assert.Equal(t, 9.0, factory.uow.store.users[user.Id].Credits)
}

func TestImageToVideoDurationNormalized(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 10.0)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.mp4"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	// The provider renders 5 or 10 seconds only, so a 7-second request is
	// fulfilled, priced, and recorded as 5 seconds.
	res, err := svc.ImageToVideo(context.Background(), user.Id, &dto.ImageToVideoRequest{
		Prompt:       "slow pan",
		ImageDataURL: "data:image/png;base64,xxx",
		Resolution:   "1080p",
		Duration:     7,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2.0, res.Cost)
	assert.Equal(t, 8.0, factory.uow.store.users[user.Id].Credits)
	for _, g := range factory.uow.store.generations {
		if assert.NotNil(t, g.DurationSeconds) {
			assert.Equal(t, 5, *g.DurationSeconds)
		}
	}
}

func TestTextToImageUnknownUser(t *testing.T) {
	factory := newFakeUowFactory()
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.png"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	_, err := svc.TextToImage(context.Background(), uuid.New(), &dto.TextToImageRequest{
		Prompt: "anything",
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, provider.calls)
}

func TestTextToImageWithTrainingLoraRejected(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 10.0)
	provider := &fakeProvider{resultURL: "https://cdn.example.com/out.png"}
	svc := NewGenerationService(factory, provider, nil, nopLogger{})

	lora := &entity.LoraModel{
		Id:     uuid.New(),
		UserId: user.Id,
		Name:   "my-style",
		Status: entity.LoraStatusTraining,
	}
	factory.uow.store.loras[lora.Id] = lora
	loraId := lora.Id.String()

	_, err := svc.TextToImage(context.Background(), user.Id, &dto.TextToImageRequest{
		Prompt:      "in my style",
		LoraModelId: &loraId,
	})

	assert.ErrorIs(t, err, ErrLoraNotFound)
	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, 10.0, factory.uow.store.users[user.Id].Credits)
}
