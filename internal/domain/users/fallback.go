package users

// DefaultFallback son los datos de ejemplo que se muestran cuando el servicio
// de usuarios no responde. Los ids "mock-" no existen en ningún backend.
func DefaultFallback() []User {
	return []User{
		{
			ID:    "mock-user-1",
			Name:  "Dr. Maria Silva",
			Email: "maria@nutriplan.com",
			Role:  RolePractitioner,
		},
		{
			ID:             "mock-user-2",
			Name:           "João Santos",
			Email:          "joao@email.com",
			Role:           RolePatient,
			PractitionerID: "mock-user-1",
		},
		{
			ID:             "mock-user-3",
			Name:           "Ana Costa",
			Email:          "ana@email.com",
			Role:           RolePatient,
			PractitionerID: "mock-user-1",
		},
	}
}
