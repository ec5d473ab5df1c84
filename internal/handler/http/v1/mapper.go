package v1

import "github.com/shenikar/event_dispatch/internal/models"

func DTOToEventModel(dto CreateEventRequest) *models.Event {
	event := &models.Event{
		Name:     dto.Name,
		StartsAt: dto.StartsAt,
		Active:   true,
	}
	if dto.Active != nil {
		event.Active = *dto.Active
	}
	return event
}

func DTOToEventPatch(dto UpdateEventRequest) models.EventPatch {
	return models.EventPatch{Name: dto.Name, StartsAt: dto.StartsAt}
}

func ModelToEventResponse(model *models.Event) *EventResponse {
	return &EventResponse{
		ID:        model.ID,
		Name:      model.Name,
		StartsAt:  model.StartsAt,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
	}
}

func ModelsToEventResponses(events []*models.Event) []*EventResponse {
	responses := make([]*EventResponse, len(events))
	for i, event := range events {
		responses[i] = ModelToEventResponse(event)
	}
	return responses
}

func DTOToCallsignModel(eventID int64, dto CreateCallsignRequest) *models.Callsign {
	return &models.Callsign{
		EventID:    eventID,
		Code:       dto.Code,
		Name:       dto.Name,
		Location:   dto.Location,
		ValidFrom:  dto.ValidFrom,
		ValidUntil: dto.ValidUntil,
		Color:      dto.Color,
	}
}

func DTOToCallsignPatch(dto UpdateCallsignRequest) models.CallsignPatch {
	return models.CallsignPatch{
		Code:       dto.Code,
		Name:       dto.Name,
		Location:   dto.Location,
		ValidFrom:  dto.ValidFrom,
		ValidUntil: dto.ValidUntil,
		Color:      dto.Color,
	}
}

func ModelToCallsignResponse(model *models.Callsign) *CallsignResponse {
	return &CallsignResponse{
		ID:          model.ID,
		EventID:     model.EventID,
		Code:        model.Code,
		Name:        model.Name,
		DisplayName: model.DisplayName(),
		Location:    model.Location,
		ValidFrom:   model.ValidFrom,
		ValidUntil:  model.ValidUntil,
		Color:       model.Color,
	}
}

func ModelsToCallsignResponses(callsigns []*models.Callsign) []*CallsignResponse {
	responses := make([]*CallsignResponse, len(callsigns))
	for i, cs := range callsigns {
		responses[i] = ModelToCallsignResponse(cs)
	}
	return responses
}

// DTOToIncidentModel возвращает модель и начальное состояние (пустое - значение по умолчанию)
func DTOToIncidentModel(eventID int64, dto CreateIncidentRequest) (*models.Incident, models.IncidentState) {
	return &models.Incident{
		EventID:      eventID,
		ReportedBy:   dto.ReportedBy,
		Type:         dto.Type,
		Description:  dto.Description,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		LocationNote: dto.LocationNote,
		BibNumber:    dto.BibNumber,
		Pathology:    dto.Pathology,
	}, models.IncidentState(dto.State)
}

func DTOToIncidentPatch(dto UpdateIncidentRequest) models.IncidentPatch {
	patch := models.IncidentPatch{
		ReportedBy:   dto.ReportedBy,
		Type:         dto.Type,
		Description:  dto.Description,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		LocationNote: dto.LocationNote,
		BibNumber:    dto.BibNumber,
		Pathology:    dto.Pathology,
	}
	if dto.State != nil {
		state := models.IncidentState(*dto.State)
		patch.State = &state
	}
	return patch
}

// ModelToIncidentResponse преобразует инцидент и его назначения в DTO для ответа
func ModelToIncidentResponse(model *models.Incident, assignments []*models.Assignment) *IncidentResponse {
	return &IncidentResponse{
		ID:             model.ID,
		EventID:        model.EventID,
		IncidentNumber: model.IncidentNumber,
		State:          string(model.State),
		ReportedBy:     model.ReportedBy,
		Type:           model.Type,
		Description:    model.Description,
		Latitude:       model.Latitude,
		Longitude:      model.Longitude,
		Address:        model.Address,
		LocationNote:   model.LocationNote,
		BibNumber:      model.BibNumber,
		Pathology:      model.Pathology,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
		PreIncidentAt:  model.PreIncidentAt,
		ActivatedAt:    model.ActivatedAt,
		StandbyAt:      model.StandbyAt,
		ResolvedAt:     model.ResolvedAt,
		Deleted:        model.Deleted,
		DeletedAt:      model.DeletedAt,
		Assignments:    ModelsToAssignmentResponses(assignments),
	}
}

// ModelsToIncidentResponses собирает список, беря назначения из индекса по ID инцидента
func ModelsToIncidentResponses(incidents []*models.Incident, assignments map[int64][]*models.Assignment) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i, incident := range incidents {
		responses[i] = ModelToIncidentResponse(incident, assignments[incident.ID])
	}
	return responses
}

func ModelToAssignmentResponse(model *models.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:            model.ID,
		IncidentID:    model.IncidentID,
		AssignedTo:    model.DisplayName(),
		CallsignID:    model.CallsignID,
		ServiceLabel:  model.ServiceLabel,
		State:         string(model.State),
		CreatedAt:     model.CreatedAt,
		PreNotifiedAt: model.PreNotifiedAt,
		NotifiedAt:    model.NotifiedAt,
		EnRouteAt:     model.EnRouteAt,
		OnSceneAt:     model.OnSceneAt,
		ClosedAt:      model.ClosedAt,
	}
}

func ModelsToAssignmentResponses(assignments []*models.Assignment) []*AssignmentResponse {
	responses := make([]*AssignmentResponse, len(assignments))
	for i, a := range assignments {
		responses[i] = ModelToAssignmentResponse(a)
	}
	return responses
}

func MessageToLocationResponse(msg *models.Message) *LocationResponse {
	resp := &LocationResponse{
		CallsignID: msg.CallsignID,
		MessageID:  msg.ID,
		Timestamp:  msg.Timestamp,
	}
	if msg.Content.Lat != nil && msg.Content.Lng != nil {
		resp.Latitude = *msg.Content.Lat
		resp.Longitude = *msg.Content.Lng
	}
	return resp
}

func MessagesToLocationResponses(messages []*models.Message) []*LocationResponse {
	responses := make([]*LocationResponse, len(messages))
	for i, msg := range messages {
		responses[i] = MessageToLocationResponse(msg)
	}
	return responses
}
