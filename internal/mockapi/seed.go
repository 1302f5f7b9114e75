package mockapi

import (
	"rhystmorgan/clientDesk/internal/models"
)

// SeedRecords is the sample data the mock-server command starts with.
func SeedRecords() []models.Record {
	return []models.Record{
		{ID: 1, Name: "Ana Souza", Email: "ana.souza@example.com", Phone: "(11) 98765-4321", Address: "Rua das Flores, 120 - São Paulo", Income: 5200, NumOfDependents: 2, Status: models.StatusActive, Observations: "Cliente desde 2019"},
		{ID: 2, Name: "Bruno Lima", Email: "bruno.lima@example.com", Phone: "(21) 99876-5432", Address: "Av. Atlântica, 500 - Rio de Janeiro", Income: 3100.5, NumOfDependents: 0, Status: models.StatusBlocked, Observations: "Pagamento pendente"},
		{ID: 3, Name: "Carla Dias", Email: "carla.dias@example.com", Phone: "(31) 91234-5678", Address: "Rua da Bahia, 45 - Belo Horizonte", Income: 8900, NumOfDependents: 1, Status: models.StatusPending},
		{ID: 4, Name: "João Pereira", Email: "joao.pereira@example.com", Phone: "(41) 93456-7890", Address: "Rua XV de Novembro, 900 - Curitiba", Income: 2500, NumOfDependents: 3, Status: models.StatusInactive},
		{ID: 5, Name: "Mariana Alves", Email: "mariana.alves@example.com", Phone: "(51) 94567-8901", Address: "Av. Ipiranga, 77 - Porto Alegre", Income: 12000, NumOfDependents: 0, Status: models.StatusActive, Observations: "Preferência por contato via email"},
	}
}
