package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/vitae/text"
)

// Keyword lists are matched on word boundaries, ignoring case and accents,
// and tolerate a trailing plural "s".

var schoolKeywords = []string{
	"College", "University", "Universität", "Universidad", "Université",
	"Universidade", "Universiteit", "Uni", "Università", "Ateneo",
	"Institute", "Institut", "Instituto", "Istituto", "School", "Scuola",
	"Escuela", "École", "Academy", "Academia", "Accademia", "Polytechnic",
	"Politecnico", "Politécnico", "Hochschule", "Fachhochschule", "Gymnasium",
	"Lyceum", "Liceo", "Lycée", "Conservatory", "Conservatorio",
	"Conservatoire", "Seminary", "Facoltà", "Faculty", "Dipartimento",
}

var schoolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2,6}$`),
	regexp.MustCompile(`(?i)\bdegli\s+studi\b`),
	regexp.MustCompile(`(?i)\b(?:ITIS|IPSIA|ITC|ITCG|IIS)\b`),
}

var degreeKeywords = []string{
	// English
	"Associate", "Bachelor", "Master", "Doctor", "Doctorate", "PhD", "Ph.D",
	"Ph.D.", "MPhil", "DPhil", "Diploma", "Certificate", "GED", "HND",
	"B.A.", "BA", "B.S.", "BS", "B.Sc.", "BSc", "B.Eng.", "BEng", "B.E.",
	"B.Tech", "BTech", "BBA", "M.A.", "M.S.", "MS", "M.Sc.", "MSc", "M.Eng.",
	"MEng", "M.Tech", "MBA", "M.B.A.", "EdD", "J.D.", "JD", "M.D.", "MD",
	"LLB", "LL.B.", "LLM", "LL.M.", "A.A.", "A.S.", "AAS",
	// Italian
	"Laurea", "Laurea Triennale", "Laurea Magistrale", "Laurea Specialistica",
	"Dottorato", "Dottorato di Ricerca", "Maturità", "Diploma di Maturità",
	"Specializzazione", "Perito", "Ragioniere", "Geometra",
	// Spanish, French, German
	"Licenciatura", "Máster", "Doctorado", "Licence", "Maîtrise",
	"Doctorat", "Baccalauréat", "Diplom", "Magister",
}

// degreeOverrides are words that keep text a degree even when it also names
// a school.
var degreeOverrides = []string{
	"degree", "master", "bachelor", "laurea", "diploma", "phd", "dottorato",
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:bachelor|master|doctor|associate)'?s?\s+(?:of|in|degree)\b`),
	regexp.MustCompile(`(?i)^(?:laurea|diploma|master|dottorato|specializzazione)\s+(?:in|di)\b`),
	regexp.MustCompile(`^[ABMD]\.[A-Z][a-z]?\.(?:[A-Z][a-z]?\.)?(?:\s|,|$)`),
}

var jobTitleKeywords = []string{
	// English
	"Accountant", "Administrator", "Advisor", "Adviser", "Agent", "Analyst",
	"Apprentice", "Architect", "Assistant", "Associate", "Attorney", "Auditor",
	"Buyer", "CEO", "CFO", "CIO", "COO", "CTO", "Cashier", "Chef", "Clerk",
	"Consultant", "Contractor", "Coordinator", "Counselor", "Designer",
	"Developer", "DevOps", "Director", "Driver", "Editor", "Electrician",
	"Engineer", "Executive", "Fellow", "Founder", "Freelancer", "Head",
	"Intern", "Internship", "Journalist", "Lawyer", "Lead", "Lecturer",
	"Manager", "Marketer", "Mechanic", "Nurse", "Officer", "Operator", "Owner",
	"Paralegal", "Partner", "Pharmacist", "Physician", "Planner", "Postdoc",
	"President", "Principal", "Producer", "Professor", "Programmer",
	"Recruiter", "Representative", "Researcher", "SRE", "Salesperson",
	"Scientist", "Specialist", "Strategist", "Supervisor", "Teacher",
	"Technician", "Tester", "Therapist", "Trainee", "Tutor", "VP",
	"Vice President", "Volunteer", "Writer",
	// Italian
	"Addetto", "Addetta", "Amministratore", "Analista", "Assistente",
	"Avvocato", "Architetto", "Cameriere", "Capo", "Collaboratore",
	"Collaboratrice", "Commerciale", "Consulente", "Contabile",
	"Coordinatore", "Coordinatrice", "Direttore", "Direttrice", "Docente",
	"Educatore", "Educatrice", "Fondatore", "Impiegato", "Impiegata",
	"Infermiere", "Ingegnere", "Insegnante", "Magazziniere", "Medico",
	"Operaio", "Programmatore", "Programmatrice", "Progettista",
	"Responsabile", "Ricercatore", "Ricercatrice", "Segretario", "Segretaria",
	"Sviluppatore", "Sviluppatrice", "Stagista", "Tecnico", "Tirocinante",
	"Titolare",
}

// isSchool reports whether s names a school. Degree text never does.
func isSchool(s string) bool {
	if text.ContainsAnyWord(s, degreeKeywords) {
		return false
	}
	if text.ContainsAnyWord(s, schoolKeywords) {
		return true
	}
	trimmed := strings.TrimSpace(s)
	for _, re := range schoolPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// isDegree reports whether s names a degree. Text naming a school counts
// only when it also carries an explicit degree word.
func isDegree(s string) bool {
	if text.ContainsAnyWord(s, schoolKeywords) && !text.ContainsAnyWord(s, degreeOverrides) {
		return false
	}
	if text.ContainsAnyWord(s, degreeKeywords) {
		return true
	}
	trimmed := strings.TrimSpace(s)
	for _, re := range degreePatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func isJobTitle(s string) bool {
	return text.ContainsAnyWord(s, jobTitleKeywords)
}
