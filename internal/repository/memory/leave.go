package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/leave"
)

type leaveRepo struct{ s *Store }

func (r leaveRepo) withName(l leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := r.s.data.employees[l.EmployeeID]; ok {
		name := e.FullName
		l.EmployeeName = &name
	}
	return l
}

func (r leaveRepo) Create(ctx context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	defer r.s.lock(ctx)()
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	r.s.data.leaves[l.ID] = l
	return r.withName(l), nil
}

func (r leaveRepo) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	defer r.s.lock(ctx)()
	l, ok := r.s.data.leaves[id]
	if !ok || l.CompanyID != companyID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withName(l), nil
}

func (r leaveRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	defer r.s.lock(ctx)()
	for _, l := range r.s.data.leaves {
		if l.EmployeeID != employeeID || l.Status == leave.StatusRejected {
			continue
		}
		if l.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r leaveRepo) Review(ctx context.Context, l leave.LeaveRequest) (bool, error) {
	defer r.s.lock(ctx)()
	if err := r.s.check("leave.Review"); err != nil {
		return false, err
	}
	existing, ok := r.s.data.leaves[l.ID]
	if !ok || existing.CompanyID != l.CompanyID {
		return false, leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.StatusPending {
		return false, nil
	}
	existing.Status = l.Status
	existing.RejectedReason = l.RejectedReason
	existing.ReviewedBy = l.ReviewedBy
	existing.ReviewedAt = l.ReviewedAt
	existing.UpdatedAt = time.Now()
	r.s.data.leaves[l.ID] = existing
	return true, nil
}

func (r leaveRepo) DeletePending(ctx context.Context, id string, companyID string) (bool, error) {
	defer r.s.lock(ctx)()
	existing, ok := r.s.data.leaves[id]
	if !ok || existing.CompanyID != companyID {
		return false, leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.StatusPending {
		return false, nil
	}
	delete(r.s.data.leaves, id)
	return true, nil
}

func (r leaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	defer r.s.lock(ctx)()
	var out []leave.LeaveRequest
	for _, l := range r.s.data.leaves {
		if l.CompanyID != filter.CompanyID {
			continue
		}
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(l.Status) != *filter.Status {
			continue
		}
		if filter.Type != nil && string(l.Type) != *filter.Type {
			continue
		}
		out = append(out, r.withName(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

func (r leaveRepo) ListApprovedOn(ctx context.Context, companyID string, at time.Time) ([]leave.LeaveRequest, error) {
	defer r.s.lock(ctx)()
	var out []leave.LeaveRequest
	for _, l := range r.s.data.leaves {
		if l.CompanyID != companyID || l.Status != leave.StatusApproved {
			continue
		}
		if l.Overlaps(at, at) {
			out = append(out, r.withName(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r leaveRepo) Stats(ctx context.Context, companyID string, monthStart, monthEnd time.Time) (leave.Stats, error) {
	defer r.s.lock(ctx)()
	var st leave.Stats
	for _, l := range r.s.data.leaves {
		if l.CompanyID != companyID {
			continue
		}
		switch l.Status {
		case leave.StatusPending:
			st.Pending++
		case leave.StatusApproved:
			if !l.StartDate.Before(monthStart) && !l.StartDate.After(monthEnd) {
				st.ApprovedThisMonth++
			}
		}
	}
	return st, nil
}
