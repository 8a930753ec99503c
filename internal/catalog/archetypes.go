package catalog

import "fanlens/internal/domain"

// defaultArchetypes devuelve el catalogo fijo de arquetipos de gusto.
// Centroides en orden [opn, con, ext, agr, neu, nov, aes, imm].
// Las afinidades apuntan a etiquetas del esquema auxiliar de cuatro letras.
func defaultArchetypes() []domain.ArchetypeDefinition {
	return []domain.ArchetypeDefinition{
		{
			ID: "explorer", Name: "Explorador",
			Description: "Vive del descubrimiento; prueba de todo y rara vez repite.",
			Centroid:    domain.TraitVector{0.85, 0.40, 0.55, 0.50, 0.40, 0.90, 0.60, 0.45},
			Affinities:  map[string]float64{"ENTP": 0.9, "ENFP": 0.8, "INTP": 0.5},
		},
		{
			ID: "devotee", Name: "Devoto",
			Description: "Pocos amores, pero absolutos; sigue todo lo que hace su creador.",
			Centroid:    domain.TraitVector{0.55, 0.70, 0.50, 0.60, 0.55, 0.25, 0.55, 0.90},
			Affinities:  map[string]float64{"ISFJ": 0.9, "INFJ": 0.8, "ISTJ": 0.5},
		},
		{
			ID: "curator", Name: "Curador",
			Description: "Ordena, lista y recomienda; su coleccion es su carta de presentacion.",
			Centroid:    domain.TraitVector{0.65, 0.85, 0.55, 0.55, 0.35, 0.50, 0.80, 0.55},
			Affinities:  map[string]float64{"ISTJ": 0.8, "INTJ": 0.8, "ESTJ": 0.6},
		},
		{
			ID: "analyst", Name: "Analista",
			Description: "Desarma cada obra en piezas; disfruta mas la critica que el consumo.",
			Centroid:    domain.TraitVector{0.80, 0.65, 0.35, 0.35, 0.45, 0.55, 0.75, 0.65},
			Affinities:  map[string]float64{"INTP": 0.9, "INTJ": 0.85, "ISTP": 0.5},
		},
		{
			ID: "socialite", Name: "Social",
			Description: "Consume para compartir; el contenido es excusa para la conversacion.",
			Centroid:    domain.TraitVector{0.55, 0.45, 0.90, 0.75, 0.40, 0.60, 0.40, 0.35},
			Affinities:  map[string]float64{"ESFP": 0.9, "ESFJ": 0.85, "ENFJ": 0.7},
		},
		{
			ID: "escapist", Name: "Escapista",
			Description: "Busca mundos donde perderse; la inmersion le importa mas que la novedad.",
			Centroid:    domain.TraitVector{0.60, 0.35, 0.30, 0.55, 0.70, 0.40, 0.65, 0.95},
			Affinities:  map[string]float64{"INFP": 0.9, "ISFP": 0.75},
		},
		{
			ID: "completionist", Name: "Completista",
			Description: "No deja nada a medias: cada saga terminada, cada logro desbloqueado.",
			Centroid:    domain.TraitVector{0.45, 0.95, 0.40, 0.50, 0.45, 0.30, 0.45, 0.75},
			Affinities:  map[string]float64{"ISTJ": 0.9, "ESTJ": 0.7},
		},
		{
			ID: "dabbler", Name: "Picoteador",
			Description: "Prueba de a sorbos, sin compromiso; consumo liviano y variado.",
			Centroid:    domain.TraitVector{0.50, 0.30, 0.60, 0.60, 0.50, 0.70, 0.35, 0.20},
			Affinities:  map[string]float64{"ESTP": 0.8, "ESFP": 0.6},
		},
	}
}
