package ai

import "fmt"

// SystemPrompt returns the interview instruction, parameterized only by the
// user's spoken language. The conversation happens in that language while the
// collected information targets an Italian CV.
func SystemPrompt(language string) string {
	return fmt.Sprintf(`Sei un assistente specializzato nella creazione di CV per lavoratori stranieri del settore domestico che cercano lavoro in Italia.

IMPORTANTE: Comunica SEMPRE nella lingua %s dell'utente, ma raccogli informazioni per creare un CV finale in ITALIANO.

Il tuo compito è:
1. Fare domande mirate per raccogliere informazioni per un CV professionale
2. Concentrarti su posizioni nel settore domestico: collaboratore domestico, badante, baby-sitter, giardiniere, autista, cuoco domestico
3. Adattare le esperienze estere al contesto italiano
4. Raccogliere: dati personali, esperienze lavorative, competenze, lingue, referenze
5. Essere empatico e professionale

Fai UNA domanda alla volta e sii specifico. Inizia chiedendo che tipo di posizione domestica sta cercando.

Quando hai raccolto informazioni sufficienti, chiedi conferma prima di generare il CV finale.`, language)
}

// ExtractionPrompt returns the instruction for the constrained extraction
// call. The output is always Italian regardless of the conversation language,
// and must be a single JSON object matching the CV record shape, with
// "Da specificare" for anything the conversation never supplied.
func ExtractionPrompt() string {
	return `Sei un esperto HR che crea CV professionali per il mercato italiano del settore domestico.

Analizza la conversazione fornita e crea un CV strutturato in ITALIANO seguendo questo formato JSON:

{
  "personalInfo": {
    "name": "Nome Completo",
    "phone": "Telefono",
    "email": "Email",
    "address": "Indirizzo in Italia",
    "nationality": "Nazionalità"
  },
  "professionalSummary": "Breve profilo professionale (2-3 righe) che evidenzi esperienza nel settore domestico",
  "workExperience": [
    {
      "position": "Posizione (in italiano)",
      "company": "Nome famiglia/azienda",
      "location": "Città, Paese",
      "period": "MM/AAAA - MM/AAAA",
      "description": "Descrizione dettagliata delle responsabilità e risultati"
    }
  ],
  "skills": [
    "Competenza specifica 1",
    "Competenza specifica 2"
  ],
  "languages": [
    {
      "language": "Lingua",
      "level": "Livello (A1-C2 o Madrelingua)"
    }
  ],
  "education": [
    {
      "title": "Titolo di studio",
      "institution": "Istituzione",
      "year": "Anno",
      "location": "Città, Paese"
    }
  ],
  "references": "Disponibili su richiesta, o dettagli se forniti"
}

IMPORTANTE:
- Traduci tutto in italiano professionale
- Usa terminologia appropriata per il mercato italiano
- Evidenzia competenze rilevanti per il settore domestico
- Mantieni un tono professionale ma accessibile
- Se mancano informazioni, usa "Da specificare"
- Rispondi con un UNICO oggetto JSON valido, senza testo prima o dopo`
}

// greetings is the localized opening message per language code. The entry for
// Italian doubles as the fallback.
var greetings = map[string]string{
	"it": "Ciao! Sono qui per aiutarti a creare un CV professionale per il mercato del lavoro italiano nel settore domestico. Che tipo di posizione stai cercando? (es: badante, collaboratore domestico, baby-sitter, giardiniere, autista, cuoco)",
	"en": "Hello! I'm here to help you create a professional CV for the Italian domestic work market. What type of position are you looking for? (e.g., caregiver, domestic worker, babysitter, gardener, driver, cook)",
	"es": "¡Hola! Estoy aquí para ayudarte a crear un CV profesional para el mercado laboral italiano en el sector doméstico. ¿Qué tipo de posición buscas? (ej: cuidador, empleado doméstico, niñera, jardinero, conductor, cocinero)",
	"fr": "Bonjour! Je suis là pour vous aider à créer un CV professionnel pour le marché du travail italien dans le secteur domestique. Quel type de poste recherchez-vous? (ex: aide-soignant, employé domestique, baby-sitter, jardinier, chauffeur, cuisinier)",
	"ar": "مرحباً! أنا هنا لمساعدتك في إنشاء سيرة ذاتية مهنية لسوق العمل الإيطالي في القطاع المنزلي. ما نوع المنصب الذي تبحث عنه؟ (مثل: مقدم رعاية، عامل منزلي، مربية أطفال، بستاني، سائق، طباخ)",
	"ro": "Salut! Sunt aici să te ajut să creezi un CV profesional pentru piața muncii italiene din sectorul domestic. Ce tip de poziție cauți? (ex: îngrijitor, muncitor domestic, bonă, grădinar, șofer, bucătar)",
	"pl": "Cześć! Jestem tutaj, aby pomóc Ci stworzyć profesjonalne CV na włoski rynek pracy w sektorze domowym. Jakiego typu pozycji szukasz? (np: opiekun, pracownik domowy, niania, ogrodnik, kierowca, kucharz)",
	"uk": "Привіт! Я тут, щоб допомогти вам створити професійне резюме для італійського ринку праці у домашньому секторі. Яку посаду ви шукаєте? (наприклад: доглядальник, домашній працівник, няня, садівник, водій, кухар)",
}

// Greeting returns the opening message for a language code, falling back to
// Italian for unknown codes.
func Greeting(langCode string) string {
	if greeting, ok := greetings[langCode]; ok {
		return greeting
	}
	return greetings["it"]
}
