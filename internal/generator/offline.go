package generator

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"showdoidioma/internal/types"
)

// Offline serves questions from a fixed bank. It keeps the game playable
// when no generation service is configured.
type Offline struct {
	bank       map[types.Language][]types.Question
	commentary map[types.CommentaryEvent][]string

	mu   sync.Mutex
	last map[servedKey]string
}

type servedKey struct {
	lang  types.Language
	level int
}

// NewOffline returns a generator backed by the built-in bank.
func NewOffline() *Offline {
	return &Offline{
		bank:       seededQuestions(),
		commentary: seededCommentary(),
		last:       make(map[servedKey]string),
	}
}

// GenerateQuestion picks a question for lang, preferring the difficulty that
// matches level. The question last served for the same language and level
// is not repeated while the pool has another one, so a skip gets a new
// question.
func (o *Offline) GenerateQuestion(ctx context.Context, lang types.Language, level int) (types.Question, error) {
	if err := ctx.Err(); err != nil {
		return types.Question{}, err
	}
	all, ok := o.bank[lang]
	if !ok || len(all) == 0 {
		return types.Question{}, fmt.Errorf("%w: %q", types.ErrUnknownLanguage, lang)
	}
	want := types.DifficultyForLevel(level)
	pool := lo.Filter(all, func(q types.Question, _ int) bool {
		return q.Difficulty == want
	})
	if len(pool) == 0 {
		pool = all
	}

	key := servedKey{lang: lang, level: level}
	o.mu.Lock()
	defer o.mu.Unlock()
	if fresh := lo.Reject(pool, func(q types.Question, _ int) bool {
		return q.Text == o.last[key]
	}); len(fresh) > 0 {
		pool = fresh
	}
	q := lo.Sample(pool)
	o.last[key] = q.Text
	return q.Clone(), nil
}

// HostCommentary returns one of the stock lines for event.
func (o *Offline) HostCommentary(ctx context.Context, event types.CommentaryEvent) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines := o.commentary[event]
	if len(lines) == 0 {
		return types.MessageCommentaryFallback, nil
	}
	return lo.Sample(lines), nil
}

func entry(text string, correct int, explanation, difficulty string, options ...string) types.Question {
	return types.Question{
		Text:         text,
		Options:      options,
		CorrectIndex: correct,
		Explanation:  explanation,
		Difficulty:   difficulty,
	}
}

func seededQuestions() map[types.Language][]types.Question {
	return map[types.Language][]types.Question{
		types.English: {
			entry("Como se diz 'maçã' em inglês?", 1, "'Apple' é a fruta maçã.", types.DifficultyEasy,
				"Orange", "Apple", "Grape", "Pear"),
			entry("Como se diz 'cachorro' em inglês?", 1, "'Dog' é cachorro; 'cat' é gato.", types.DifficultyEasy,
				"Cat", "Dog", "Bird", "Horse"),
			entry("Qual é o plural de 'child'?", 1, "'Child' tem plural irregular: children.", types.DifficultyEasy,
				"Childs", "Children", "Childes", "Childrens"),
			entry("Complete: 'She ___ a teacher.'", 2, "Com 'she' o verbo 'to be' fica 'is'.", types.DifficultyEasy,
				"are", "am", "is", "be"),
			entry("Qual é o passado de 'go'?", 2, "'Go' é irregular: go, went, gone.", types.DifficultyMedium,
				"Goed", "Gone", "Went", "Going"),
			entry("Complete: 'I have lived here ___ 2010.'", 1, "'Since' marca o ponto de início; 'for' marca a duração.", types.DifficultyMedium,
				"for", "since", "during", "from"),
			entry("O que significa 'pretend'?", 1, "'Pretend' é falso cognato: significa fingir.", types.DifficultyMedium,
				"Pretender", "Fingir", "Prender", "Apresentar"),
			entry("Complete: 'There isn't ___ milk left.'", 1, "Em frases negativas usa-se 'any'.", types.DifficultyMedium,
				"many", "any", "some", "few"),
			entry("Complete: 'If I ___ you, I would study more.'", 0, "No segundo condicional usa-se 'were' para todas as pessoas.", types.DifficultyHard,
				"were", "was being", "am", "be"),
			entry("O que significa 'to beat around the bush'?", 3, "A expressão significa evitar o assunto principal.", types.DifficultyHard,
				"Trabalhar no jardim", "Vencer facilmente", "Perder tempo caçando", "Enrolar para falar algo"),
			entry("Complete: 'By next year, she ___ her degree.'", 0, "Uma ação concluída antes de um ponto no futuro pede o future perfect.", types.DifficultyHard,
				"will have finished", "finishes", "has finished", "finished"),
			entry("Complete: 'Hardly ___ arrived when it started to rain.'", 1, "Depois de 'hardly' no início da frase há inversão: had we.", types.DifficultyHard,
				"we had", "had we", "we have", "have we"),
		},
		types.Spanish: {
			entry("Como se diz 'cachorro' em espanhol?", 0, "'Perro' é cachorro; 'cachorro' em espanhol é filhote.", types.DifficultyEasy,
				"Perro", "Gato", "Cachorro", "Pájaro"),
			entry("Como se diz 'obrigado' em espanhol?", 2, "'Gracias' é a forma de agradecer.", types.DifficultyEasy,
				"Por favor", "De nada", "Gracias", "Perdón"),
			entry("O que significa 'quince'?", 1, "'Quince' é o número quinze.", types.DifficultyEasy,
				"Cinco", "Quinze", "Cinquenta", "Quinhentos"),
			entry("Como se diz 'vermelho' em espanhol?", 3, "Vermelho em espanhol é 'rojo'.", types.DifficultyEasy,
				"Azul", "Verde", "Amarillo", "Rojo"),
			entry("Qual é o significado de 'embarazada'?", 2, "'Embarazada' é falso cognato: significa grávida.", types.DifficultyMedium,
				"Envergonhada", "Embaraçada", "Grávida", "Cansada"),
			entry("O que significa 'exquisito'?", 1, "'Exquisito' é falso cognato: significa delicioso.", types.DifficultyMedium,
				"Esquisito", "Delicioso", "Estranho", "Caro"),
			entry("Complete: 'Ayer yo ___ al cine.'", 1, "Ação pontual no passado: pretérito indefinido de 'ir', fui.", types.DifficultyMedium,
				"voy", "fui", "iré", "iba"),
			entry("O que significa 'oficina' em espanhol?", 1, "'Oficina' é o escritório; a oficina mecânica é 'taller'.", types.DifficultyMedium,
				"Oficina mecânica", "Escritório", "Fábrica", "Loja"),
			entry("Complete: 'Ojalá que ___ buen tiempo mañana.'", 1, "'Ojalá que' pede o subjuntivo: haga.", types.DifficultyHard,
				"hace", "haga", "hará", "hacía"),
			entry("Complete: 'Si yo ___ rico, viajaría por el mundo.'", 1, "Hipótese irreal pede o imperfeito do subjuntivo: fuera.", types.DifficultyHard,
				"soy", "fuera", "seré", "sea"),
			entry("Complete: 'Te lo digo para que lo ___.'", 1, "'Para que' exige o subjuntivo: sepas.", types.DifficultyHard,
				"sabes", "sepas", "sabrás", "sabías"),
			entry("O que significa 'estar en las nubes'?", 2, "A expressão significa estar distraído.", types.DifficultyHard,
				"Estar feliz", "Viajar de avião", "Estar distraído", "Estar doente"),
		},
		types.French: {
			entry("Como se diz 'obrigado' em francês?", 3, "'Merci' é a forma usual de agradecer.", types.DifficultyEasy,
				"Bonjour", "Pardon", "Salut", "Merci"),
			entry("Como se diz 'gato' em francês?", 1, "Gato em francês é 'chat'.", types.DifficultyEasy,
				"Chien", "Chat", "Oiseau", "Cheval"),
			entry("Como se diz 'água' em francês?", 0, "Água em francês é 'eau'.", types.DifficultyEasy,
				"Eau", "Pain", "Lait", "Vin"),
			entry("O que significa 'sept'?", 1, "'Sept' é o número sete.", types.DifficultyEasy,
				"Seis", "Sete", "Oito", "Dezessete"),
			entry("Qual artigo acompanha 'pomme'?", 0, "'Pomme' é feminino: la pomme.", types.DifficultyMedium,
				"la", "le", "les", "l'"),
			entry("Qual é o passé composé de 'aller' com 'je'?", 1, "'Aller' forma o passé composé com 'être': je suis allé.", types.DifficultyMedium,
				"j'ai allé", "je suis allé", "je vais allé", "j'allais"),
			entry("O que significa 'librairie'?", 1, "'Librairie' é livraria; biblioteca é 'bibliothèque'.", types.DifficultyMedium,
				"Biblioteca", "Livraria", "Papelaria", "Escola"),
			entry("Complete: 'Nous ___ français.'", 3, "Com 'nous' os verbos em -er terminam em -ons.", types.DifficultyMedium,
				"parle", "parlez", "parlent", "parlons"),
			entry("Complete: 'Il faut que tu ___ à l'heure.'", 2, "'Il faut que' exige o subjuntivo: sois.", types.DifficultyHard,
				"es", "seras", "sois", "étais"),
			entry("Complete: 'Si j'avais su, je ___ venu.'", 0, "Hipótese no passado pede o condicional passado: serais venu.", types.DifficultyHard,
				"serais", "suis", "serai", "étais"),
			entry("Complete: 'C'est la ville ___ je suis né.'", 2, "'Où' retoma um lugar.", types.DifficultyHard,
				"que", "dont", "où", "qui"),
			entry("O que significa 'poser un lapin'?", 3, "A expressão significa não aparecer a um encontro.", types.DifficultyHard,
				"Caçar coelhos", "Fazer uma pergunta", "Mudar de casa", "Dar um bolo em alguém"),
		},
		types.German: {
			entry("Como se diz 'casa' em alemão?", 1, "'Haus' é neutro: das Haus.", types.DifficultyEasy,
				"Hund", "Haus", "Hand", "Hose"),
			entry("Como se diz 'obrigado' em alemão?", 1, "'Danke' é obrigado; 'bitte' é por favor.", types.DifficultyEasy,
				"Bitte", "Danke", "Hallo", "Tschüss"),
			entry("Como se diz 'água' em alemão?", 0, "Água em alemão é 'Wasser'.", types.DifficultyEasy,
				"Wasser", "Brot", "Milch", "Bier"),
			entry("O que significa 'drei'?", 2, "'Drei' é o número três.", types.DifficultyEasy,
				"Dois", "Treze", "Três", "Trinta"),
			entry("Qual é o artigo de 'Mädchen'?", 2, "Substantivos com o sufixo -chen são neutros.", types.DifficultyMedium,
				"der", "die", "das", "den"),
			entry("Qual é o particípio de 'gehen'?", 1, "'Gehen' é irregular: gegangen.", types.DifficultyMedium,
				"gegeht", "gegangen", "gangen", "geging"),
			entry("O que significa 'Gift' em alemão?", 1, "'Gift' é falso cognato: significa veneno.", types.DifficultyMedium,
				"Presente", "Veneno", "Comida", "Dinheiro"),
			entry("Qual é o artigo de 'Sonne'?", 1, "'Sonne' é feminino: die Sonne.", types.DifficultyMedium,
				"der", "die", "das", "den"),
			entry("Complete: 'Ich helfe ___ Mann.'", 0, "'Helfen' rege dativo: dem Mann.", types.DifficultyHard,
				"dem", "den", "der", "des"),
			entry("Complete: 'Wenn ich Zeit hätte, ___ ich dich besuchen.'", 0, "Hipótese irreal pede o Konjunktiv II: würde.", types.DifficultyHard,
				"würde", "werde", "wurde", "wäre"),
			entry("Em 'Ich weiß, dass er heute kommt', onde fica o verbo da oração com 'dass'?", 2, "Em orações subordinadas o verbo conjugado vai para o final.", types.DifficultyHard,
				"No início", "Na segunda posição", "No final", "Antes de 'dass'"),
			entry("O que significa 'Da steppt der Bär'?", 2, "A expressão diz que a festa está animada.", types.DifficultyHard,
				"Há perigo por perto", "Está muito frio", "A festa está animada", "Alguém está com raiva"),
		},
		types.Italian: {
			entry("Como se diz 'bom dia' em italiano?", 0, "'Buongiorno' é a saudação da manhã.", types.DifficultyEasy,
				"Buongiorno", "Buonanotte", "Arrivederci", "Grazie"),
			entry("Como se diz 'obrigado' em italiano?", 1, "'Grazie' é obrigado; 'prego' é de nada.", types.DifficultyEasy,
				"Prego", "Grazie", "Ciao", "Scusa"),
			entry("Como se diz 'pão' em italiano?", 2, "Pão em italiano é 'pane'.", types.DifficultyEasy,
				"Pasta", "Vino", "Pane", "Latte"),
			entry("O que significa 'otto'?", 0, "'Otto' é o número oito.", types.DifficultyEasy,
				"Oito", "Oitenta", "Sete", "Nove"),
			entry("Qual é o plural de 'uovo'?", 3, "'Uovo' tem plural irregular feminino: uova.", types.DifficultyMedium,
				"uovi", "uove", "uovos", "uova"),
			entry("O que significa 'burro' em italiano?", 1, "'Burro' é falso cognato: significa manteiga.", types.DifficultyMedium,
				"Burro", "Manteiga", "Queijo", "Pão"),
			entry("Qual é o passato prossimo de 'andare' com 'io'?", 1, "'Andare' usa o auxiliar 'essere': sono andato.", types.DifficultyMedium,
				"ho andato", "sono andato", "vado andato", "andavo"),
			entry("O que significa 'salire'?", 1, "'Salire' significa subir.", types.DifficultyMedium,
				"Sair", "Subir", "Saltar", "Salgar"),
			entry("Complete: 'Se avessi tempo, ___ in Italia.'", 1, "No período hipotético usa-se o condicional: andrei.", types.DifficultyHard,
				"andavo", "andrei", "vado", "andassi"),
			entry("Complete: 'Penso che lui ___ ragione.'", 1, "'Pensare che' pede o congiuntivo: abbia.", types.DifficultyHard,
				"ha", "abbia", "avrà", "aveva"),
			entry("O que significa 'in bocca al lupo'?", 3, "A expressão deseja boa sorte.", types.DifficultyHard,
				"Cuidado com o lobo", "Fique quieto", "Bom apetite", "Boa sorte"),
			entry("Complete: 'Se lo avessi saputo, te lo ___ detto.'", 0, "Hipótese no passado pede o condicional composto: avrei detto.", types.DifficultyHard,
				"avrei", "avevo", "ho", "avessi"),
		},
		types.Portuguese: {
			entry("Como se diz 'ônibus' em Portugal?", 2, "Em Portugal diz-se 'autocarro'.", types.DifficultyEasy,
				"Comboio", "Elétrico", "Autocarro", "Camião"),
			entry("Como se diz 'trem' em Portugal?", 0, "Em Portugal diz-se 'comboio'.", types.DifficultyEasy,
				"Comboio", "Metro", "Elétrico", "Autocarro"),
			entry("Como se diz 'celular' em Portugal?", 1, "Em Portugal diz-se 'telemóvel'.", types.DifficultyEasy,
				"Portátil", "Telemóvel", "Móvel", "Telefone fixo"),
			entry("Como se diz 'sorvete' em Portugal?", 2, "Em Portugal diz-se 'gelado'.", types.DifficultyEasy,
				"Picolé", "Sobremesa", "Gelado", "Granizado"),
			entry("O que significa 'pequeno-almoço' em Portugal?", 0, "'Pequeno-almoço' é o café da manhã.", types.DifficultyMedium,
				"Café da manhã", "Lanche", "Almoço leve", "Sobremesa"),
			entry("O que é uma 'bica' em Lisboa?", 1, "Em Lisboa 'bica' é um café expresso.", types.DifficultyMedium,
				"Um pão", "Um café expresso", "Uma torneira", "Um bolo"),
			entry("O que significa 'rapariga' em Portugal?", 3, "Em Portugal 'rapariga' é simplesmente moça.", types.DifficultyMedium,
				"Criança", "Empregada", "Senhora idosa", "Moça"),
			entry("O que significa 'casa de banho' em Portugal?", 0, "'Casa de banho' é o banheiro.", types.DifficultyMedium,
				"Banheiro", "Piscina", "Lavandaria", "Spa"),
			entry("Complete: 'Estou ___ ler um livro.'", 3, "Em Portugal o gerúndio costuma ser 'a + infinitivo'.", types.DifficultyHard,
				"de", "em", "para", "a"),
			entry("Qual é a forma usual em Portugal?", 1, "Em frases afirmativas Portugal usa a ênclise: disse-me.", types.DifficultyHard,
				"Ele me disse", "Ele disse-me", "Ele disse me", "Me ele disse"),
			entry("Como se dizia tradicionalmente 'fila' em Portugal?", 1, "Em Portugal a fila é tradicionalmente a 'bicha'.", types.DifficultyHard,
				"Linha", "Bicha", "Rua", "Carreira"),
			entry("O que significa 'fixe' em Portugal?", 1, "'Fixe' é gíria para legal.", types.DifficultyHard,
				"Fixo", "Legal", "Chato", "Caro"),
		},
	}
}

func seededCommentary() map[types.CommentaryEvent][]string {
	return map[types.CommentaryEvent][]string{
		types.CommentaryIntro: {
			"Está valendo! Vamos começar o Show do Idioma!",
			"Prepare-se, a primeira pergunta já vem aí!",
		},
		types.CommentaryCorrect: {
			"Certa resposta! Vamos para a próxima!",
			"Muito bem! Você está afiado!",
		},
		types.CommentaryIncorrect: {
			types.MessageIncorrectFallback,
			"Errou! Mas continue estudando, você chega lá!",
		},
		types.CommentaryLifeline: {
			types.MessageLifelineFallback,
			"Pediu ajuda? Às vezes é o mais sábio a fazer!",
		},
	}
}
