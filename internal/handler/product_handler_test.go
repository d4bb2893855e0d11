package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateProductRequest_Validation(t *testing.T) {
	valid := CreateProductRequest{
		Title:            "Oak Bookshelf",
		Category:         "FURNITURE",
		Description:      "Solid oak, five shelves",
		Price:            decimal.NewFromFloat(120),
		Quantity:         1,
		Condition:        "GOOD",
		WorkingCondition: "Sturdy, minor scratches",
	}

	tests := []struct {
		name    string
		mutate  func(*CreateProductRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(r *CreateProductRequest) {},
			wantErr: false,
		},
		{
			name:    "zero quantity is rejected",
			mutate:  func(r *CreateProductRequest) { r.Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative quantity is rejected",
			mutate:  func(r *CreateProductRequest) { r.Quantity = -1 },
			wantErr: true,
		},
		{
			name:    "missing title is rejected",
			mutate:  func(r *CreateProductRequest) { r.Title = "" },
			wantErr: true,
		},
		{
			name:    "missing working condition is rejected",
			mutate:  func(r *CreateProductRequest) { r.WorkingCondition = "" },
			wantErr: true,
		},
	}

	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := v.Struct(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
