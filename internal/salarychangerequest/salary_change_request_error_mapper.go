package salarychangerequest

import (
	"errors"
	"strings"

	salarychangerequesterrors "github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uq_salary_change_pending is a partial unique index on (company_id,
// employee_id) WHERE status = 'PENDING'.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarychangerequesterrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_change_pending" {
			return salarychangerequesterrors.ErrPendingRequestExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_change_pending") {
		return salarychangerequesterrors.ErrPendingRequestExists
	}

	return err
}
