package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
	"form-template-api/internal/response"
)

func TestCreateTemplate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	kartu := env.category(t, "Kartu Nama")
	unknown := uuid.New()

	tests := []struct {
		name     string
		req      dto.CreateFormTemplateRequest
		wantCode string
		wantName string
	}{
		{
			name:     "성공: 카테고리와 함께 생성",
			req:      dto.CreateFormTemplateRequest{Name: "Kartu Nama", Description: "Detail kartu", CategoryID: &kartu},
			wantName: "Kartu Nama",
		},
		{
			name:     "성공: HTML 태그 제거",
			req:      dto.CreateFormTemplateRequest{Name: "<b>Yasin</b> & Tahlil"},
			wantName: "Yasin & Tahlil",
		},
		{
			name:     "실패: 태그만 있는 이름",
			req:      dto.CreateFormTemplateRequest{Name: "<script>alert(1)</script>"},
			wantCode: response.ErrCodeValidation,
		},
		{
			name:     "실패: 존재하지 않는 카테고리",
			req:      dto.CreateFormTemplateRequest{Name: "Brosur", CategoryID: &unknown},
			wantCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.templates.CreateTemplate(ctx, &tt.req)
			if tt.wantCode != "" {
				requireAppError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, resp.Name)
			assert.Equal(t, 0, resp.ElementCount)
		})
	}

	mapped, err := env.categories.TemplateFor(ctx, kartu)
	require.NoError(t, err)
	require.NotNil(t, mapped)
	assert.Equal(t, "Kartu Nama", mapped.Name)
}

func TestGetTemplate_ElementsSorted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	first := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "Nama"})
	second := env.element(t, tmpl, dto.CreateFormElementRequest{Type: "email", Label: "Email"})

	_, err := env.elements.ReorderElements(ctx, tmpl, []uuid.UUID{second, first})
	require.NoError(t, err)

	resp, err := env.templates.GetTemplate(ctx, tmpl)
	require.NoError(t, err)
	require.Len(t, resp.Elements, 2)
	assert.Equal(t, second, resp.Elements[0].ID)
	assert.Equal(t, 1, resp.Elements[0].Order)
	assert.Equal(t, first, resp.Elements[1].ID)
	assert.Equal(t, 2, resp.ElementCount)

	_, err = env.templates.GetTemplate(ctx, uuid.New())
	requireAppError(t, err, response.ErrCodeNotFound)
}

func TestListTemplates_Pagination(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	withElements := env.template(t, "Kartu Nama", nil)
	env.element(t, withElements, dto.CreateFormElementRequest{Type: "input"})
	env.element(t, withElements, dto.CreateFormElementRequest{Type: "input"})
	env.template(t, "Yasin", nil)
	env.template(t, "Undangan", nil)

	page, err := env.templates.ListTemplates(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)

	last, err := env.templates.ListTemplates(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)
	assert.False(t, last.HasMore)

	counts := make(map[uuid.UUID]int)
	for _, p := range [][]dto.FormTemplateResponse{page.Items, last.Items} {
		for _, item := range p {
			assert.Empty(t, item.Elements)
			counts[item.ID] = item.ElementCount
		}
	}
	assert.Equal(t, 2, counts[withElements])

	defaults, err := env.templates.ListTemplates(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, maxLimit, defaults.Limit)
}

func TestUpdateTemplate_MovesCategory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	kartu := env.category(t, "Kartu Nama")
	brosur := env.category(t, "Brosur")
	tmpl := env.template(t, "Kartu Nama", &kartu)

	resp, err := env.templates.UpdateTemplate(ctx, tmpl, &dto.UpdateFormTemplateRequest{
		Name:       "Kartu Nama Premium",
		CategoryID: &brosur,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kartu Nama Premium", resp.Name)
	require.NotNil(t, resp.CategoryID)
	assert.Equal(t, brosur, *resp.CategoryID)

	old, err := env.categories.TemplateFor(ctx, kartu)
	require.NoError(t, err)
	assert.Nil(t, old)

	moved, err := env.categories.TemplateFor(ctx, brosur)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, tmpl, moved.ID)

	// a null category removes the association
	resp, err = env.templates.UpdateTemplate(ctx, tmpl, &dto.UpdateFormTemplateRequest{Name: "Kartu Nama Premium"})
	require.NoError(t, err)
	assert.Nil(t, resp.CategoryID)
	moved, err = env.categories.TemplateFor(ctx, brosur)
	require.NoError(t, err)
	assert.Nil(t, moved)
}

func TestDeleteTemplate_ClearsMapping(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	kartu := env.category(t, "Kartu Nama")
	tmpl := env.template(t, "Kartu Nama", &kartu)
	env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "Nama"})

	require.NoError(t, env.templates.DeleteTemplate(ctx, tmpl))

	mapping, err := env.categoryRepo.FindByID(ctx, kartu)
	require.NoError(t, err)
	assert.Nil(t, mapping.FormTemplateID)

	err = env.templates.DeleteTemplate(ctx, tmpl)
	requireAppError(t, err, response.ErrCodeNotFound)
}

func TestImportTemplate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	yasin := env.category(t, "Yasin")

	doc := []byte(`
name: Yasin
description: Buku Yasin custom
category_id: ` + yasin.String() + `
elements:
  - type: input
    label: Nama Almarhum
    required: true
  - type: input
    validation: /^[A-Z][a-z]+$/gi
    validation_message: Huruf saja
  - type: select
    label: Warna sampul
    options:
      - {label: Hijau, value: hijau}
      - {label: Emas, value: emas}
  - type: date
    label: Tanggal wafat
`)

	resp, err := env.templates.ImportTemplate(ctx, doc)
	require.NoError(t, err)
	require.Len(t, resp.Elements, 4)
	require.NotNil(t, resp.CategoryID)
	assert.Equal(t, yasin, *resp.CategoryID)

	assert.Equal(t, "Nama Almarhum", resp.Elements[0].Label)
	assert.Equal(t, 1, resp.Elements[0].Order)
	assert.Equal(t, "Text Input 2", resp.Elements[1].Label)
	require.NotNil(t, resp.Elements[1].Validation)
	assert.Equal(t, "^[A-Z][a-z]+$", resp.Elements[1].Validation.Pattern)
	assert.Equal(t, "i", resp.Elements[1].Validation.Flags)
	assert.Len(t, resp.Elements[2].Options, 2)
	assert.Equal(t, 4, resp.Elements[3].Order)

	mapped, err := env.categories.TemplateFor(ctx, yasin)
	require.NoError(t, err)
	require.NotNil(t, mapped)
	assert.Equal(t, resp.ID, mapped.ID)
}

func TestImportTemplate_Errors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name     string
		doc      string
		wantCode string
	}{
		{"실패: YAML 형식 오류", "name: [unclosed", response.ErrCodeValidation},
		{"실패: 이름 없음", "description: x", response.ErrCodeValidation},
		{"실패: 알 수 없는 타입", "name: X\nelements:\n  - type: slider\n", response.ErrCodeValidation},
		{"실패: 중복 옵션", "name: X\nelements:\n  - type: radio\n    options: [{label: A, value: a}, {label: B, value: a}]\n", response.ErrCodeValidation},
		{"실패: 잘못된 정규식", "name: X\nelements:\n  - type: input\n    validation: /([a-z/\n", response.ErrCodeValidation},
		{"실패: 잘못된 카테고리 ID", "name: X\ncategory_id: nope\n", response.ErrCodeValidation},
		{"실패: 없는 카테고리", "name: X\ncategory_id: " + uuid.NewString() + "\n", response.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.templates.ImportTemplate(ctx, []byte(tt.doc))
			requireAppError(t, err, tt.wantCode)
		})
	}

	total, err := env.templateRepo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRenderTemplate_Defaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tmpl := env.template(t, "Kartu Nama", nil)
	env.element(t, tmpl, dto.CreateFormElementRequest{Type: "input", Label: "Jabatan", DefaultValue: strPtr("Direktur")})
	env.element(t, tmpl, dto.CreateFormElementRequest{
		Type:    "radio",
		Label:   "Finishing",
		Options: []dto.ElementOptionDTO{{Label: "Doff", Value: "doff"}, {Label: "Glossy", Value: "glossy"}},
	})

	fields, err := env.templates.RenderTemplate(ctx, tmpl)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Jabatan", fields[0].Label)
	assert.Equal(t, "Direktur", fields[0].Value)
	assert.Equal(t, "radio-group", fields[1].Widget)
	assert.Len(t, fields[1].Options, 2)
}

func TestCreateTemplate_RepositoryError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFormTemplateService(env.templateRepo, &MockFormCategoryRepository{
		FindByIDFunc: func(ctx context.Context, categoryID uuid.UUID) (*domain.FormCategoryMapping, error) {
			return nil, errors.New("connection reset")
		},
	}, nil, zap.NewNop())

	category := uuid.New()
	_, err := svc.CreateTemplate(context.Background(), &dto.CreateFormTemplateRequest{Name: "Kartu", CategoryID: &category})
	appErr := requireAppError(t, err, response.ErrCodeInternal)
	assert.Contains(t, appErr.Details, "connection reset")
}
