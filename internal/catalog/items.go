package catalog

import "fanlens/internal/domain"

// Helpers de autoria: opciones binarias (acuerdo/desacuerdo, valores en
// [-1,1]) y escala de cuatro pasos (valores en [0,1]).
func binOpts(agree, disagree string) []domain.AnswerOption {
	return []domain.AnswerOption{
		{ID: "a", Label: agree, Value: 1},
		{ID: "b", Label: disagree, Value: -1},
	}
}

func scaleOpts(lowest, low, high, highest string) []domain.AnswerOption {
	return []domain.AnswerOption{
		{ID: "a", Label: lowest, Value: 0},
		{ID: "b", Label: low, Value: 1.0 / 3.0},
		{ID: "c", Label: high, Value: 2.0 / 3.0},
		{ID: "d", Label: highest, Value: 1},
	}
}

// defaultItems devuelve el banco autorado: 6 items por trait, 2 anclas por
// trait. Los parametros de dificultad/discriminacion son autorados a mano,
// no calibrados empiricamente.
func defaultItems() []domain.TraitItem {
	return []domain.TraitItem{
		// --- Openness ---
		{
			ID: "opn-1", Prompt: "Disfruto explorar ideas raras o abstractas aunque no tengan uso practico.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitOpenness,
			Difficulty: -0.8, Discrimination: 1.9, IsAnchor: true,
			Options: binOpts("Muy de acuerdo", "En desacuerdo"),
		},
		{
			ID: "opn-2", Prompt: "Con que frecuencia buscas obras (musica, series, juegos) fuera de tu zona de confort?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitOpenness,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitNoveltySeeking, Weight: 0.4}},
			Difficulty: 0.2, Discrimination: 2.1, IsAnchor: true,
			Options: scaleOpts("Casi nunca", "De vez en cuando", "Seguido", "Todo el tiempo"),
		},
		{
			ID: "opn-3", Prompt: "Prefiero historias con finales abiertos antes que resoluciones claras.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitOpenness,
			Difficulty: 1.1, Discrimination: 1.4,
			Options: binOpts("Prefiero finales abiertos", "Prefiero resoluciones claras"),
		},
		{
			ID: "opn-4", Prompt: "Que tan seguido te quedas pensando en una obra dias despues de terminarla?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitOpenness,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitImmersion, Weight: 0.35}},
			Difficulty: -0.3, Discrimination: 1.6,
			Options: scaleOpts("Nunca", "Rara vez", "A menudo", "Casi siempre"),
		},
		{
			ID: "opn-5", Prompt: "Me atraen los generos experimentales o dificiles de clasificar.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitOpenness,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitAestheticSensitivity, Weight: 0.3}},
			Difficulty: 1.8, Discrimination: 1.2,
			Options: binOpts("Si, me atraen", "No, los evito"),
		},
		{
			ID: "opn-6", Prompt: "Cuando un creador cambia de estilo radicalmente, como reaccionas?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitOpenness,
			Difficulty: 0.6, Discrimination: 1.3,
			Options: []domain.AnswerOption{
				{ID: "a", Label: "Me molesta, quiero lo de siempre", Value: 0},
				{ID: "b", Label: "Lo tolero con dudas", Value: 1.0 / 3.0},
				{ID: "c", Label: "Me da curiosidad", Value: 2.0 / 3.0},
				{ID: "d", Label: "Me entusiasma el riesgo", Value: 1,
					Deltas: []domain.TraitLoading{{Trait: domain.TraitNoveltySeeking, Weight: 0.5}}},
			},
		},

		// --- Conscientiousness ---
		{
			ID: "con-1", Prompt: "Planifico mi semana con antelacion y suelo cumplir el plan.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitConscientiousness,
			Difficulty: -0.5, Discrimination: 2.0, IsAnchor: true,
			Options: binOpts("Muy de acuerdo", "En desacuerdo"),
		},
		{
			ID: "con-2", Prompt: "Que tan seguido terminas lo que empezas (series, juegos, proyectos)?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitConscientiousness,
			Difficulty: 0.1, Discrimination: 2.2, IsAnchor: true,
			Options: scaleOpts("Casi nunca", "A veces", "Casi siempre", "Siempre"),
		},
		{
			ID: "con-3", Prompt: "Mantengo mis listas y colecciones ordenadas y al dia.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitConscientiousness,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitImmersion, Weight: 0.25}},
			Difficulty: 0.9, Discrimination: 1.5,
			Options: binOpts("Si, siempre", "No, es un caos"),
		},
		{
			ID: "con-4", Prompt: "Cuando sigo una serie en emision, que tan puntual soy con cada estreno?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitConscientiousness,
			Difficulty: -1.2, Discrimination: 1.3,
			Options: scaleOpts("Lo veo cuando pinta", "Dentro de la semana", "El mismo dia", "Apenas sale"),
		},
		{
			ID: "con-5", Prompt: "Prefiero ver una obra completa en orden antes que saltar capitulos.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitConscientiousness,
			Difficulty: -1.8, Discrimination: 1.1,
			Options: binOpts("Siempre en orden", "Salto sin culpa"),
		},
		{
			ID: "con-6", Prompt: "Que tan consistente es tu rutina de consumo de contenido?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitConscientiousness,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitNeuroticism, Weight: -0.2}},
			Difficulty: 1.4, Discrimination: 1.4,
			Options: scaleOpts("Totalmente impulsiva", "Algo variable", "Bastante estable", "Como un reloj"),
		},

		// --- Extraversion ---
		{
			ID: "ext-1", Prompt: "Disfruto comentar en vivo lo que estoy viendo con otras personas.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitExtraversion,
			Difficulty: -0.6, Discrimination: 2.0, IsAnchor: true,
			Options: binOpts("Me encanta", "Prefiero verlo solo"),
		},
		{
			ID: "ext-2", Prompt: "Que tan seguido recomendas activamente contenido a tus amigos?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitExtraversion,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitAgreeableness, Weight: 0.3}},
			Difficulty: 0.3, Discrimination: 1.9, IsAnchor: true,
			Options: scaleOpts("Nunca", "Si me preguntan", "Seguido", "Soy insufrible recomendando"),
		},
		{
			ID: "ext-3", Prompt: "Participo en comunidades o foros de fans.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitExtraversion,
			Difficulty: 1.0, Discrimination: 1.6,
			Options: binOpts("Si, activamente", "No, solo leo"),
		},
		{
			ID: "ext-4", Prompt: "Despues de un evento o estreno grande, que haces?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitExtraversion,
			Difficulty: 0.7, Discrimination: 1.4,
			Options: []domain.AnswerOption{
				{ID: "a", Label: "Lo proceso solo", Value: 0},
				{ID: "b", Label: "Leo reacciones ajenas", Value: 1.0 / 3.0},
				{ID: "c", Label: "Lo comento con conocidos", Value: 2.0 / 3.0},
				{ID: "d", Label: "Organizo la discusion yo", Value: 1},
			},
		},
		{
			ID: "ext-5", Prompt: "Ir a un evento presencial de un creador me da mas energia que cansancio.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitExtraversion,
			Difficulty: 1.6, Discrimination: 1.2,
			Options: binOpts("Energia", "Cansancio"),
		},
		{
			ID: "ext-6", Prompt: "Que tan comodo te sentis hablando en publico de tus gustos?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitExtraversion,
			Difficulty: -1.1, Discrimination: 1.3,
			Options: scaleOpts("Nada comodo", "Poco", "Bastante", "Totalmente"),
		},

		// --- Agreeableness ---
		{
			ID: "agr-1", Prompt: "Cuando alguien ama algo que a mi no me gusto, lo dejo disfrutar sin discutir.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitAgreeableness,
			Difficulty: -0.9, Discrimination: 1.8, IsAnchor: true,
			Options: binOpts("Si, lo dejo ser", "Le discuto igual"),
		},
		{
			ID: "agr-2", Prompt: "Que tan importante es para vos que tu grupo disfrute, aunque no sea tu eleccion?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitAgreeableness,
			Difficulty: 0.0, Discrimination: 1.9, IsAnchor: true,
			Options: scaleOpts("Nada", "Poco", "Bastante", "Fundamental"),
		},
		{
			ID: "agr-3", Prompt: "Evito arruinarle spoilers a otros aunque me tiente.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitAgreeableness,
			Difficulty: -1.5, Discrimination: 1.4,
			Options: binOpts("Jamas spoileo", "A veces se me escapa"),
		},
		{
			ID: "agr-4", Prompt: "En una discusion de fans acalorada, que rol tomas?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitAgreeableness,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitExtraversion, Weight: 0.2}},
			Difficulty: 0.8, Discrimination: 1.5,
			Options: scaleOpts("Ataco con todo", "Defiendo mi postura", "Busco puntos en comun", "Calmo las aguas"),
		},
		{
			ID: "agr-5", Prompt: "Perdono rapido cuando un creador que sigo comete un error.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitAgreeableness,
			Difficulty: 1.2, Discrimination: 1.3,
			Options: binOpts("Si, perdono rapido", "Me cuesta mucho"),
		},
		{
			ID: "agr-6", Prompt: "Que tan seguido cedes la eleccion de que ver en grupo?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitAgreeableness,
			Difficulty: 0.4, Discrimination: 1.2,
			Options: scaleOpts("Nunca, elijo yo", "Rara vez", "Seguido", "Casi siempre"),
		},

		// --- Neuroticism ---
		{
			ID: "neu-1", Prompt: "Me preocupa quedarme afuera de lo que todos estan viendo.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitNeuroticism,
			Difficulty: -0.4, Discrimination: 1.8, IsAnchor: true,
			Options: binOpts("Si, me genera ansiedad", "No me afecta"),
		},
		{
			ID: "neu-2", Prompt: "Cuanto te afecta emocionalmente un final triste o injusto?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitNeuroticism,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitImmersion, Weight: 0.3}},
			Difficulty: 0.2, Discrimination: 1.9, IsAnchor: true,
			Options: scaleOpts("Nada", "Un rato", "Unos dias", "Semanas"),
		},
		{
			ID: "neu-3", Prompt: "Si un capitulo nuevo se retrasa, me pongo de mal humor.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitNeuroticism,
			Difficulty: 1.0, Discrimination: 1.4,
			Options: binOpts("Si, me irrita", "Me da igual"),
		},
		{
			ID: "neu-4", Prompt: "Con que frecuencia cambias de opinion sobre una obra segun tu estado de animo?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitNeuroticism,
			Difficulty: 0.6, Discrimination: 1.3,
			Options: scaleOpts("Nunca", "Rara vez", "Seguido", "Constantemente"),
		},
		{
			ID: "neu-5", Prompt: "Las criticas negativas a algo que amo me duelen como personales.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitNeuroticism,
			Difficulty: 1.5, Discrimination: 1.5,
			Options: binOpts("Si, me duelen", "No, son solo opiniones"),
		},
		{
			ID: "neu-6", Prompt: "Que tan tenso te pone no saber como termina una historia?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitNeuroticism,
			Difficulty: -1.0, Discrimination: 1.2,
			Options: scaleOpts("Nada", "Algo", "Bastante", "Insoportable"),
		},

		// --- Novelty seeking ---
		{
			ID: "nov-1", Prompt: "Prefiero probar un estreno desconocido antes que repetir un clasico seguro.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitNoveltySeeking,
			Difficulty: -0.2, Discrimination: 2.1, IsAnchor: true,
			Options: binOpts("El estreno desconocido", "El clasico seguro"),
		},
		{
			ID: "nov-2", Prompt: "Cuantos generos distintos consumiste el ultimo mes?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitNoveltySeeking,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitOpenness, Weight: 0.4}},
			Difficulty: 0.5, Discrimination: 2.0, IsAnchor: true,
			Options: scaleOpts("Uno", "Dos", "Tres o cuatro", "Cinco o mas"),
		},
		{
			ID: "nov-3", Prompt: "Me aburro rapido si un creador repite su formula.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitNoveltySeeking,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitConscientiousness, Weight: -0.25}},
			Difficulty: 0.9, Discrimination: 1.6,
			Options: binOpts("Si, me aburro", "No, la formula me gusta"),
		},
		{
			ID: "nov-4", Prompt: "Que tan seguido abandonas algo a la mitad porque aparecio otra cosa nueva?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitNoveltySeeking,
			Difficulty: 1.3, Discrimination: 1.3,
			Options: scaleOpts("Nunca", "Rara vez", "Seguido", "Siempre"),
		},
		{
			ID: "nov-5", Prompt: "Sigo cuentas o canales solo para enterarme de lo ultimo.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitNoveltySeeking,
			Difficulty: -1.3, Discrimination: 1.2,
			Options: binOpts("Si, varios", "Ninguno"),
		},
		{
			ID: "nov-6", Prompt: "Cuando una plataforma te recomienda algo fuera de tu perfil, que haces?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitNoveltySeeking,
			Difficulty: 0.1, Discrimination: 1.5,
			Options: scaleOpts("Lo ignoro", "Lo anoto para despues", "Le doy una chance", "Lo pruebo al instante"),
		},

		// --- Aesthetic sensitivity ---
		{
			ID: "aes-1", Prompt: "Puedo disfrutar una obra solo por su estetica aunque la historia sea floja.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitAestheticSensitivity,
			Difficulty: -0.5, Discrimination: 2.0, IsAnchor: true,
			Options: binOpts("Totalmente", "No, la historia manda"),
		},
		{
			ID: "aes-2", Prompt: "Que tanto notas detalles de fotografia, mezcla de sonido o tipografia?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitAestheticSensitivity,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitOpenness, Weight: 0.35}},
			Difficulty: 0.4, Discrimination: 2.2, IsAnchor: true,
			Options: scaleOpts("No los noto", "A veces", "Casi siempre", "Son lo primero que veo"),
		},
		{
			ID: "aes-3", Prompt: "Una portada o el arte de un album puede decidir si le doy play.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitAestheticSensitivity,
			Difficulty: 0.0, Discrimination: 1.5,
			Options: binOpts("Si, influye mucho", "No, es irrelevante"),
		},
		{
			ID: "aes-4", Prompt: "Con que frecuencia volves a una obra solo para revisar su estilo?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitAestheticSensitivity,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitImmersion, Weight: 0.25}},
			Difficulty: 1.7, Discrimination: 1.4,
			Options: scaleOpts("Nunca", "Alguna vez", "Seguido", "Es mi costumbre"),
		},
		{
			ID: "aes-5", Prompt: "Me molesta el mal gusto visual aunque el contenido sea bueno.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitAestheticSensitivity,
			Difficulty: 1.1, Discrimination: 1.3,
			Options: binOpts("Si, me molesta", "Ni lo registro"),
		},
		{
			ID: "aes-6", Prompt: "Que tanto valoras una direccion de arte coherente en lo que segui?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitAestheticSensitivity,
			Difficulty: -1.4, Discrimination: 1.2,
			Options: scaleOpts("Nada", "Poco", "Bastante", "Es esencial"),
		},

		// --- Immersion ---
		{
			ID: "imm-1", Prompt: "Cuando algo me atrapa, pierdo la nocion del tiempo por completo.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitImmersion,
			Difficulty: -0.7, Discrimination: 2.0, IsAnchor: true,
			Options: binOpts("Me pasa siempre", "Rara vez me pasa"),
		},
		{
			ID: "imm-2", Prompt: "Que tan profundo investigas el lore o trasfondo de lo que te gusta?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitImmersion,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitConscientiousness, Weight: 0.2}},
			Difficulty: 0.3, Discrimination: 2.1, IsAnchor: true,
			Options: scaleOpts("Solo lo superficial", "Wiki basica", "Teorias y detras de escena", "Hasta el material de descarte"),
		},
		{
			ID: "imm-3", Prompt: "Puedo maratonear una temporada entera sin planearlo.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitImmersion,
			Difficulty: -1.6, Discrimination: 1.3,
			Options: binOpts("Si, me pasa seguido", "No, doso siempre"),
		},
		{
			ID: "imm-4", Prompt: "Con que frecuencia relees o revisitas tus obras favoritas?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitImmersion,
			Difficulty: 0.8, Discrimination: 1.5,
			Options: scaleOpts("Nunca", "Alguna vez", "Cada tanto", "Es un ritual"),
		},
		{
			ID: "imm-5", Prompt: "Sigo consumiendo material secundario (podcasts, ensayos, fanart) de mis favoritos.",
			Type: domain.ItemTypeBinary, Primary: domain.TraitImmersion,
			Secondary:  []domain.TraitLoading{{Trait: domain.TraitNoveltySeeking, Weight: -0.2}},
			Difficulty: 1.4, Discrimination: 1.6,
			Options: binOpts("Si, todo lo que haya", "No, con la obra basta"),
		},
		{
			ID: "imm-6", Prompt: "Que tan vivido queda en tu memoria un mundo ficticio que te gusto?",
			Type: domain.ItemTypeMulti, Primary: domain.TraitImmersion,
			Difficulty: 0.0, Discrimination: 1.4,
			Options: scaleOpts("Se me borra rapido", "Recuerdo lo general", "Recuerdo detalles", "Podria vivir ahi"),
		},
	}
}
