package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/response"
)

func TestAddElement_AutoLabelAndOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)

	var labels []string
	var orders []int
	for _, typ := range []string{"input", "input", "checkbox", "input"} {
		resp, err := env.elements.AddElement(ctx, tmpl, &dto.CreateFormElementRequest{Type: typ})
		require.NoError(t, err)
		labels = append(labels, resp.Label)
		orders = append(orders, resp.Order)
	}

	assert.Equal(t, []string{"Text Input 1", "Text Input 2", "Checkbox 1", "Text Input 3"}, labels)
	assert.Equal(t, []int{1, 2, 3, 4}, orders)
}

func TestAddElement_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)

	tests := []struct {
		name     string
		template uuid.UUID
		req      dto.CreateFormElementRequest
		wantCode string
		check    func(t *testing.T, resp *dto.FormElementResponse)
	}{
		{
			name:     "성공: 선택지 요소",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:    "select",
				Label:   "Bahan",
				Options: []dto.ElementOptionDTO{{Label: "Art Carton", Value: "art-carton"}, {Label: "", Value: "ivory"}},
			},
			check: func(t *testing.T, resp *dto.FormElementResponse) {
				require.Len(t, resp.Options, 2)
				assert.Equal(t, "ivory", resp.Options[1].Label)
			},
		},
		{
			name:     "성공: 선택지가 아닌 타입의 옵션은 버려짐",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:       "input",
				Label:      "Nama",
				Options:    []dto.ElementOptionDTO{{Label: "A", Value: "a"}},
				FileAccept: strPtr(".pdf"),
			},
			check: func(t *testing.T, resp *dto.FormElementResponse) {
				assert.Empty(t, resp.Options)
				assert.Nil(t, resp.FileAccept)
			},
		},
		{
			name:     "성공: 구분자 형식 정규식 분리",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:       "input",
				Label:      "Kode",
				Validation: &dto.ValidationDTO{Pattern: "/^[a-z]{2}\\d+$/i", Message: "Kode tidak valid"},
			},
			check: func(t *testing.T, resp *dto.FormElementResponse) {
				require.NotNil(t, resp.Validation)
				assert.Equal(t, `^[a-z]{2}\d+$`, resp.Validation.Pattern)
				assert.Equal(t, "i", resp.Validation.Flags)
			},
		},
		{
			name:     "성공: 중복 플래그 정규화",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:       "input",
				Label:      "Kode Promo",
				Validation: &dto.ValidationDTO{Pattern: "/^[a-z]+$/gim", Flags: "smimsimsism"},
			},
			check: func(t *testing.T, resp *dto.FormElementResponse) {
				require.NotNil(t, resp.Validation)
				assert.Equal(t, "^[a-z]+$", resp.Validation.Pattern)
				assert.Equal(t, "ims", resp.Validation.Flags)
			},
		},
		{
			name:     "실패: 중복 옵션 값",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:    "radio",
				Options: []dto.ElementOptionDTO{{Label: "A", Value: "a"}, {Label: "B", Value: " a "}},
			},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 빈 옵션 값",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:    "checkbox",
				Options: []dto.ElementOptionDTO{{Label: "A", Value: "  "}},
			},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 컴파일되지 않는 정규식",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:       "input",
				Validation: &dto.ValidationDTO{Pattern: "([a-z"},
			},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 지원하지 않는 플래그",
			template: tmpl,
			req: dto.CreateFormElementRequest{
				Type:       "input",
				Validation: &dto.ValidationDTO{Pattern: "^a$", Flags: "x"},
			},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 알 수 없는 타입",
			template: tmpl,
			req:      dto.CreateFormElementRequest{Type: "slider"},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 없는 템플릿",
			template: uuid.New(),
			req:      dto.CreateFormElementRequest{Type: "input"},
			wantCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.elements.AddElement(ctx, tt.template, &tt.req)
			if tt.wantCode != "" {
				requireAppError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

func TestUpdateElement(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	id := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "Nama"})

	resp, err := env.elements.UpdateElement(ctx, id, &dto.UpdateFormElementRequest{
		Label:    strPtr("<i>Nama lengkap</i>"),
		Required: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nama lengkap", resp.Label)
	assert.True(t, resp.Required)
	assert.Equal(t, 1, resp.Order)

	_, err = env.elements.UpdateElement(ctx, id, &dto.UpdateFormElementRequest{Label: strPtr("   ")})
	requireAppError(t, err, response.ErrCodeValidation)

	// switching to a choice type requires unique options
	dup := []dto.ElementOptionDTO{{Label: "A", Value: "a"}, {Label: "A", Value: "a"}}
	_, err = env.elements.UpdateElement(ctx, id, &dto.UpdateFormElementRequest{Type: strPtr("select"), Options: &dup})
	requireAppError(t, err, response.ErrCodeValidation)

	stored, err := env.elementRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ElementTypeInput, stored.Type)
	assert.Equal(t, "Nama lengkap", stored.Label)

	_, err = env.elements.UpdateElement(ctx, uuid.New(), &dto.UpdateFormElementRequest{Label: strPtr("x")})
	requireAppError(t, err, response.ErrCodeNotFound)
}

func TestDeleteElement_CompactsOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	a := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "A"})
	b := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "B"})
	c := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "C"})

	require.NoError(t, env.elements.DeleteElement(ctx, b))

	list, err := env.elements.ListElements(ctx, tmpl)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, 1, list[0].Order)
	assert.Equal(t, c, list[1].ID)
	assert.Equal(t, 2, list[1].Order)

	// deleting an unknown element leaves the list unchanged
	err = env.elements.DeleteElement(ctx, uuid.New())
	requireAppError(t, err, response.ErrCodeNotFound)
	after, err := env.elements.ListElements(ctx, tmpl)
	require.NoError(t, err)
	assert.Equal(t, list, after)
}

func TestReorderElements(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	a := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "A"})
	b := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "B"})
	c := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "C"})

	tests := []struct {
		name     string
		template uuid.UUID
		ids      []uuid.UUID
		wantCode string
		want     []uuid.UUID
	}{
		{name: "성공: 순서 변경", template: tmpl, ids: []uuid.UUID{c, a, b}, want: []uuid.UUID{c, a, b}},
		{name: "실패: 요소 누락", template: tmpl, ids: []uuid.UUID{c, a}, wantCode: response.ErrCodeUnprocessable},
		{name: "실패: 중복 요소", template: tmpl, ids: []uuid.UUID{c, a, a}, wantCode: response.ErrCodeUnprocessable},
		{name: "실패: 다른 템플릿 요소", template: tmpl, ids: []uuid.UUID{c, a, uuid.New()}, wantCode: response.ErrCodeUnprocessable},
		{name: "실패: 없는 템플릿", template: uuid.New(), ids: []uuid.UUID{a}, wantCode: response.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.elements.ReorderElements(ctx, tt.template, tt.ids)
			if tt.wantCode != "" {
				requireAppError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			got := make([]uuid.UUID, len(resp))
			for i, el := range resp {
				got[i] = el.ID
				assert.Equal(t, i+1, el.Order)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReorderElements_SameOrderWritesNothing(t *testing.T) {
	templateID := uuid.New()
	elements := []*domain.FormElement{
		{BaseModel: domain.BaseModel{ID: uuid.New()}, TemplateID: templateID, Type: domain.ElementTypeInput, Label: "A", Order: 1},
		{BaseModel: domain.BaseModel{ID: uuid.New()}, TemplateID: templateID, Type: domain.ElementTypeInput, Label: "B", Order: 2},
	}

	env := newTestEnv(t)
	reorderCalls := 0
	mockRepo := &MockFormElementRepository{
		FindByTemplateIDFunc: func(ctx context.Context, id uuid.UUID) ([]*domain.FormElement, error) {
			return elements, nil
		},
		ReorderFunc: func(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error {
			reorderCalls++
			return nil
		},
	}
	require.NoError(t, env.db.Create(&domain.FormTemplate{BaseModel: domain.BaseModel{ID: templateID}, Name: "Kartu"}).Error)

	svc := NewFormElementService(env.templateRepo, mockRepo, zap.NewNop())
	_, err := svc.ReorderElements(context.Background(), templateID, []uuid.UUID{elements[0].ID, elements[1].ID})
	require.NoError(t, err)
	assert.Zero(t, reorderCalls)

	_, err = svc.ReorderElements(context.Background(), templateID, []uuid.UUID{elements[1].ID, elements[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, reorderCalls)
}

func TestDeleteElement_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"실패: 없는 요소", gorm.ErrRecordNotFound, response.ErrCodeNotFound},
		{"실패: DB 오류", errors.New("disk full"), response.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFormElementService(nil, &MockFormElementRepository{
				DeleteFunc: func(ctx context.Context, id uuid.UUID) error { return tt.err },
			}, nil)
			err := svc.DeleteElement(context.Background(), uuid.New())
			requireAppError(t, err, tt.wantCode)
		})
	}
}

// Option values of a choice element are accepted exactly when they are unique
func TestProperty_OptionValuesUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("choice elements reject duplicate option values", prop.ForAll(
		func(values []string) bool {
			el := &domain.FormElement{Type: domain.ElementTypeSelect, Label: "Bahan"}
			seen := make(map[string]bool)
			unique := true
			for _, v := range values {
				if seen[v] {
					unique = false
				}
				seen[v] = true
				el.Options = append(el.Options, domain.ElementOption{Label: v, Value: v})
			}

			appErr := normalizeElement(el)
			if unique {
				return appErr == nil
			}
			return appErr != nil && appErr.Code == response.ErrCodeValidation
		},
		gen.SliceOf(gen.IntRange(0, 5).Map(func(i int) string { return fmt.Sprintf("opt-%d", i) })),
	))

	properties.TestingRun(t)
}

// Any permutation applied through ReorderElements yields contiguous orders
// 1..N in the requested sequence, and applying it twice changes nothing
func TestProperty_ReorderIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		ids = append(ids, env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input"}))
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("reorder applies the permutation and is idempotent", prop.ForAll(
		func(perm []int) bool {
			want := make([]uuid.UUID, len(perm))
			for i, p := range perm {
				want[i] = ids[p]
			}

			first, err := env.elements.ReorderElements(ctx, tmpl, want)
			if err != nil {
				return false
			}
			second, err := env.elements.ReorderElements(ctx, tmpl, want)
			if err != nil {
				return false
			}
			for i := range want {
				if first[i].ID != want[i] || first[i].Order != i+1 || second[i].ID != want[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.Int()).Map(func(seed []int) []int {
			return permutation(seed)
		}),
	))

	properties.TestingRun(t)
}

// permutation derives a permutation of 0..len(seed)-1 from arbitrary ints
func permutation(seed []int) []int {
	perm := make([]int, len(seed))
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := seed[i] % (i + 1)
		if j < 0 {
			j = -j
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func boolPtr(b bool) *bool { return &b }
