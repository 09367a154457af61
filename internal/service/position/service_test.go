package position

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffSalary() position.SalaryFields {
	return position.SalaryFields{
		BaseSalary:          decimal.NewFromInt(5_000_000),
		Allowance:           decimal.NewFromInt(500_000),
		MealAllowance:       decimal.NewFromInt(20_000),
		TransportAllowance:  decimal.NewFromInt(15_000),
		HourlyRate:          decimal.NewFromInt(30_000),
		LateDeductionPerMin: decimal.NewFromInt(1_000),
	}
}

func TestCreate(t *testing.T) {
	svc := NewPositionService(memory.NewStore().Positions())
	ctx := context.Background()

	created, err := svc.Create(ctx, position.CreatePositionRequest{CompanyID: "c-1", Name: "Staff", SalaryFields: staffSalary()})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	profile, err := svc.GetProfile(ctx, created.ID, "c-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5_000_000).Equal(profile.BaseSalary))

	t.Run("duplicate name in tenant", func(t *testing.T) {
		_, err := svc.Create(ctx, position.CreatePositionRequest{CompanyID: "c-1", Name: "Staff", SalaryFields: staffSalary()})
		assert.ErrorIs(t, err, position.ErrPositionNameExists)
	})

	t.Run("same name in another tenant", func(t *testing.T) {
		_, err := svc.Create(ctx, position.CreatePositionRequest{CompanyID: "c-2", Name: "Staff", SalaryFields: staffSalary()})
		assert.NoError(t, err)
	})

	t.Run("profile is tenant scoped", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, created.ID, "c-2")
		assert.ErrorIs(t, err, position.ErrPositionNotFound)
	})
}

func TestCreate_Validation(t *testing.T) {
	svc := NewPositionService(memory.NewStore().Positions())

	salary := staffSalary()
	salary.HourlyRate = decimal.NewFromInt(-1)
	salary.MealAllowance = decimal.RequireFromString("10.005")

	_, err := svc.Create(context.Background(), position.CreatePositionRequest{CompanyID: "c-1", Name: " ", SalaryFields: salary})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "hourly_rate")
	assert.Contains(t, fields, "meal_allowance")
}

func TestUpdateAndList(t *testing.T) {
	svc := NewPositionService(memory.NewStore().Positions())
	ctx := context.Background()

	staff, err := svc.Create(ctx, position.CreatePositionRequest{CompanyID: "c-1", Name: "Staff", SalaryFields: staffSalary()})
	require.NoError(t, err)
	_, err = svc.Create(ctx, position.CreatePositionRequest{CompanyID: "c-1", Name: "Manager", SalaryFields: staffSalary()})
	require.NoError(t, err)

	raised := staffSalary()
	raised.BaseSalary = decimal.NewFromInt(6_000_000)
	updated, err := svc.Update(ctx, position.UpdatePositionRequest{ID: staff.ID, CompanyID: "c-1", Name: "Staff", SalaryFields: raised})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6_000_000).Equal(updated.BaseSalary))

	_, err = svc.Update(ctx, position.UpdatePositionRequest{ID: staff.ID, CompanyID: "c-1", Name: "Manager", SalaryFields: raised})
	assert.ErrorIs(t, err, position.ErrPositionNameExists)

	_, err = svc.Update(ctx, position.UpdatePositionRequest{ID: "missing", CompanyID: "c-1", Name: "Staff", SalaryFields: raised})
	assert.ErrorIs(t, err, position.ErrPositionNotFound)

	list, err := svc.List(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Manager", list[0].Name)
	assert.Equal(t, "Staff", list[1].Name)
}
