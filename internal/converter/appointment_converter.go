package converter

import (
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:             appointment.ID,
		CenterID:       appointment.CenterID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		Title:          appointment.Title,
		Description:    appointment.Description,
		StartTime:      appointment.StartTime,
		EndTime:        appointment.EndTime,
		Type:           string(appointment.Type),
		Status:         string(appointment.Status),
		Notes:          appointment.Notes,
		MeetingURL:     appointment.MeetingURL,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// TimeSlotsToResponses converts free slots to their wire form
func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.TimeSlotResponse{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}
	return responses
}
