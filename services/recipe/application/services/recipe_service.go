package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/recipelog/pkg/logger"
	"github.com/ghuser/recipelog/pkg/notify"
	"github.com/ghuser/recipelog/services/recipe/application/forms"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/events"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/domain/repositories"
)

// Publisher is the slice of the event bus the service needs.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// SubmitResult is what a successful submit reports back to the page.
type SubmitResult struct {
	Mode   models.EditMode
	Result models.WriteResult
	Notice notify.Notice
}

// DeleteResult is what a successful delete reports back.
type DeleteResult struct {
	Result models.WriteResult
	Notice notify.Notice
}

// EditForm is a record loaded into the form in edit mode.
type EditForm struct {
	State  models.EditState
	Input  forms.FormInput
	Notice notify.Notice
}

// RecipeService is the form controller: it validates input, dispatches writes
// to the store and turns outcomes into notices.
type RecipeService struct {
	store  repositories.RecipeStore
	events Publisher
	log    logger.Logger

	submitting atomic.Bool
	writes     metric.Int64Counter
}

// NewRecipeService wires a service. events may be nil.
func NewRecipeService(store repositories.RecipeStore, pub Publisher, log logger.Logger) *RecipeService {
	writes, err := otel.Meter("github.com/ghuser/recipelog/services/recipe").Int64Counter(
		"recipelog.store.writes",
		metric.WithDescription("Record store writes by operation and outcome."),
	)
	if err != nil {
		log.Warn("recipe write counter unavailable", "error", err)
	}
	return &RecipeService{store: store, events: pub, log: log, writes: writes}
}

// Submit validates in and creates or updates a record according to state.
// Nothing reaches the store when validation fails. A submit that overlaps
// another one returns ErrSubmitInProgress.
func (s *RecipeService) Submit(ctx context.Context, state models.EditState, in forms.FormInput) (SubmitResult, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return SubmitResult{}, recipedomain.ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	draft, err := forms.Validate(in)
	if err != nil {
		return SubmitResult{}, err
	}

	if state.IsEdit() {
		res, err := s.store.Update(ctx, state.ID, models.PatchFromDraft(draft))
		if err != nil {
			return SubmitResult{}, fmt.Errorf("update recipe: %w", err)
		}
		s.record(ctx, "update", res)
		if !res.Accepted() {
			return SubmitResult{}, &recipedomain.StoreError{Op: "update recipe", Message: res.Message}
		}
		s.publish(ctx, events.TopicRecipeUpdated, state.ID, draft.DishName, res)
		return SubmitResult{Mode: models.ModeEdit, Result: res, Notice: notify.Success("食譜已成功更新！")}, nil
	}

	res, err := s.store.Create(ctx, draft)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("create recipe: %w", err)
	}
	s.record(ctx, "create", res)
	if !res.Accepted() {
		return SubmitResult{}, &recipedomain.StoreError{Op: "create recipe", Message: res.Message}
	}
	var id models.RecipeID
	if res.Recipe != nil {
		id = res.Recipe.ID
	}
	s.publish(ctx, events.TopicRecipeCreated, id, draft.DishName, res)
	return SubmitResult{Mode: models.ModeCreate, Result: res, Notice: notify.Success("食譜已成功保存！")}, nil
}

// Delete removes the record. The caller is responsible for confirmation.
func (s *RecipeService) Delete(ctx context.Context, id models.RecipeID) (DeleteResult, error) {
	res, err := s.store.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete recipe: %w", err)
	}
	s.record(ctx, "delete", res)
	if !res.Accepted() {
		return DeleteResult{}, &recipedomain.StoreError{Op: "delete recipe", Message: res.Message}
	}
	s.publish(ctx, events.TopicRecipeDeleted, id, "", res)
	return DeleteResult{Result: res, Notice: notify.Warning("料理記錄已刪除")}, nil
}

// LoadForEdit fetches a record and fills the form with it.
func (s *RecipeService) LoadForEdit(ctx context.Context, id models.RecipeID) (EditForm, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return EditForm{}, err
	}
	return EditForm{
		State:  models.EditStateFor(r.ID),
		Input:  forms.FromRecipe(r),
		Notice: notify.Info("正在編輯: " + r.DishName),
	}, nil
}

// Get returns one record or ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, id models.RecipeID) (*models.Recipe, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// List returns every record in store order.
func (s *RecipeService) List(ctx context.Context) ([]*models.Recipe, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return list, nil
}

// Search filters by dish name or ingredient; a blank keyword lists everything.
func (s *RecipeService) Search(ctx context.Context, keyword string) ([]*models.Recipe, error) {
	list, err := s.store.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return list, nil
}

// Ping reports whether the store is reachable.
func (s *RecipeService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// publish never fails the request; the write already happened.
func (s *RecipeService) publish(ctx context.Context, topic string, id models.RecipeID, dishName string, res models.WriteResult) {
	if s.events == nil {
		return
	}
	ev := events.NewRecipeChangedEvent(id.String(), dishName, res.Outcome == models.WriteSuccess)
	if err := s.events.PublishJSON(ctx, topic, ev); err != nil {
		s.log.WarnContext(ctx, "publish recipe event", "topic", topic, "error", err)
	}
}

func (s *RecipeService) record(ctx context.Context, op string, res models.WriteResult) {
	if s.writes == nil {
		return
	}
	s.writes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", res.Outcome.String()),
	))
}

// NoticeFor turns a failed operation into the notice shown to the user.
func NoticeFor(err error) notify.Notice {
	var se *recipedomain.StoreError
	switch {
	case errors.Is(err, recipedomain.ErrSubmitInProgress):
		return notify.Warning("上一筆資料仍在處理中，請稍候")
	case errors.Is(err, recipedomain.ErrRecipeNotFound):
		return notify.Warning("找不到這筆料理記錄")
	case errors.Is(err, recipedomain.ErrInvalidRecipe):
		return notify.Error("請填寫料理名稱、日期、食材和步驟")
	case errors.As(err, &se) && se.Message != "":
		return notify.Error("操作失敗：" + se.Message)
	default:
		return notify.Error("操作失敗，請稍後再試")
	}
}
