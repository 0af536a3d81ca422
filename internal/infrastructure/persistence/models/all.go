package models

// All returns every model of the gateway schema in migration order
func All() []interface{} {
	return []interface{}{
		&CustomerModel{},
		&AppointmentModel{},
		&AvailableSlotModel{},
		&UserModel{},
		&ServiceModel{},
		&ActivityModel{},
		&MessageModel{},
		&SubmissionModel{},
	}
}
