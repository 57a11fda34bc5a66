package recipes

// DefaultFallback son las recetas de ejemplo para cuando el servicio de receitas no responde.
func DefaultFallback() []Recipe {
	return []Recipe{
		{
			ID:          "mock-recipe-1",
			Name:        "Salada de Quinoa com Legumes",
			Category:    "Almoço",
			PrepMinutes: 20,
			Ingredients: []string{
				"1 xícara de quinoa",
				"2 tomates picados",
				"1 pepino picado",
				"1/2 cebola roxa",
				"Azeite extra virgem",
				"Limão",
				"Sal e pimenta",
			},
			Steps: []string{
				"Cozinhe a quinoa conforme instruções da embalagem",
				"Pique todos os vegetais em cubos pequenos",
				"Misture a quinoa fria com os vegetais",
				"Tempere com azeite, limão, sal e pimenta",
				"Deixe descansar por 10 minutos antes de servir",
			},
			PractitionerID: "mock-user-1",
			PatientID:      "mock-user-2",
		},
		{
			ID:          "mock-recipe-2",
			Name:        "Smoothie Verde Detox",
			Category:    "Café da Manhã",
			PrepMinutes: 5,
			Ingredients: []string{
				"1 banana",
				"1 xícara de espinafre",
				"1/2 abacate",
				"1 xícara de água de coco",
				"1 colher de sopa de chia",
				"Gengibre a gosto",
			},
			Steps: []string{
				"Adicione todos os ingredientes no liquidificador",
				"Bata até obter consistência homogênea",
				"Sirva imediatamente",
				"Decore com sementes de chia se desejar",
			},
			PractitionerID: "mock-user-1",
			PatientID:      "mock-user-2",
		},
		{
			ID:          "mock-recipe-3",
			Name:        "Salmão Grelhado com Aspargos",
			Category:    "Jantar",
			PrepMinutes: 25,
			Ingredients: []string{
				"200g de filé de salmão",
				"200g de aspargos",
				"2 colheres de sopa de azeite",
				"1 limão",
				"Alho picado",
				"Ervas finas",
				"Sal e pimenta",
			},
			Steps: []string{
				"Tempere o salmão com sal, pimenta e ervas",
				"Aqueça uma frigideira antiaderente",
				"Grelhe o salmão por 4-5 minutos de cada lado",
				"Refogue os aspargos com alho e azeite",
				"Sirva com limão",
			},
			PractitionerID: "mock-user-1",
			PatientID:      "mock-user-3",
		},
	}
}
