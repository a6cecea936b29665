package handler

import "github.com/staffdesk/employee-system/internal/core/ports"

func toCreateInput(req createEmployeeRequest) ports.CreateEmployeeInput {
	return ports.CreateEmployeeInput{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		AvatarURL:  req.AvatarURL,
		IsActive:   req.IsActive,
	}
}

func toUpdateInput(req updateEmployeeRequest) ports.UpdateEmployeeInput {
	return ports.UpdateEmployeeInput{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		AvatarURL:  req.AvatarURL,
		IsActive:   req.IsActive,
	}
}

func toListResponse(r *ports.ListEmployeesResult) listEmployeesResponse {
	return listEmployeesResponse{
		Data: r.Items,
		Pagination: paginationResponse{
			Page:       r.Page,
			PerPage:    r.PerPage,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}
