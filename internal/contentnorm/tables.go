package contentnorm

import "regexp"

// English to Spanish phrase tables for backend-authored routine content.

var stepNameRules = []Rule{
	{"Gentle Cleanser", "Limpiador suave"},
	{"Foaming Cleanser", "Limpiador espumoso"},
	{"Oil Cleanser", "Limpiador en aceite"},
	{"Double Cleanse", "Doble limpieza"},
	{"Cleanser", "Limpiador"},
	{"Cleanse", "Limpieza"},
	{"Makeup Remover", "Desmaquillante"},
	{"Toner", "Tónico"},
	{"Essence", "Esencia"},
	{"Vitamin C Serum", "Sérum de vitamina C"},
	{"Hyaluronic Acid Serum", "Sérum de ácido hialurónico"},
	{"Niacinamide Serum", "Sérum de niacinamida"},
	{"Serum", "Sérum"},
	{"Eye Cream", "Contorno de ojos"},
	{"Night Cream", "Crema de noche"},
	{"Moisturizer", "Hidratante"},
	{"Moisturize", "Hidratación"},
	{"Sunscreen", "Protector solar"},
	{"Sun Protection", "Protección solar"},
	{"Chemical Exfoliant", "Exfoliante químico"},
	{"Exfoliant", "Exfoliante"},
	{"Exfoliation", "Exfoliación"},
	{"Exfoliate", "Exfoliar"},
	{"Face Mask", "Mascarilla facial"},
	{"Clay Mask", "Mascarilla de arcilla"},
	{"Sheet Mask", "Mascarilla de tela"},
	{"Spot Treatment", "Tratamiento localizado"},
	{"Lip Balm", "Bálsamo labial"},
	{"Morning Routine", "Rutina de mañana"},
	{"Evening Routine", "Rutina de noche"},
	{"Weekly Treatment", "Tratamiento semanal"},
}

var instructionRules = []Rule{
	{"Apply a pea-sized amount", "Aplica una cantidad del tamaño de un guisante"},
	{"apply a pea-sized amount", "aplica una cantidad del tamaño de un guisante"},
	{"Apply a generous amount", "Aplica una cantidad generosa"},
	{"apply a generous amount", "aplica una cantidad generosa"},
	{"Apply a thin layer", "Aplica una capa fina"},
	{"apply a thin layer", "aplica una capa fina"},
	{"Apply", "Aplica"},
	{"apply", "aplica"},
	{"Reapply every 2 hours", "Vuelve a aplicar cada 2 horas"},
	{"reapply every 2 hours", "vuelve a aplicar cada 2 horas"},
	{"Reapply", "Vuelve a aplicar"},
	{"reapply", "vuelve a aplicar"},
	{"Gently massage", "Masajea suavemente"},
	{"gently massage", "masajea suavemente"},
	{"in circular motions", "con movimientos circulares"},
	{"Rinse with lukewarm water", "Enjuaga con agua tibia"},
	{"rinse with lukewarm water", "enjuaga con agua tibia"},
	{"Rinse thoroughly", "Enjuaga bien"},
	{"rinse thoroughly", "enjuaga bien"},
	{"Rinse", "Enjuaga"},
	{"rinse", "enjuaga"},
	{"pat dry", "seca con toques suaves"},
	{"Pat dry", "Seca con toques suaves"},
	{"to clean, dry skin", "sobre la piel limpia y seca"},
	{"to damp skin", "sobre la piel húmeda"},
	{"to your face and neck", "en el rostro y el cuello"},
	{"your face", "tu rostro"},
	{"face and neck", "rostro y cuello"},
	{"Avoid the eye area", "Evita el área de los ojos"},
	{"avoid the eye area", "evita el área de los ojos"},
	{"Avoid sun exposure", "Evita la exposición al sol"},
	{"avoid sun exposure", "evita la exposición al sol"},
	{"Let it absorb", "Deja que se absorba"},
	{"let it absorb", "deja que se absorba"},
	{"Leave on for", "Deja actuar durante"},
	{"leave on for", "deja actuar durante"},
	{"before moisturizer", "antes del hidratante"},
	{"after cleansing", "después de la limpieza"},
	{"twice a day", "dos veces al día"},
	{"Twice a day", "Dos veces al día"},
	{"once a day", "una vez al día"},
	{"Once a day", "Una vez al día"},
	{"once a week", "una vez a la semana"},
	{"twice a week", "dos veces por semana"},
	{"every morning", "cada mañana"},
	{"Every morning", "Cada mañana"},
	{"every night", "cada noche"},
	{"Every night", "Cada noche"},
	{"in the morning", "por la mañana"},
	{"In the morning", "Por la mañana"},
	{"in the evening", "por la noche"},
	{"In the evening", "Por la noche"},
	{"at night", "por la noche"},
	{"At night", "Por la noche"},
	{"before bed", "antes de dormir"},
	{"sensitive skin", "piel sensible"},
	{"oily skin", "piel grasa"},
	{"dry skin", "piel seca"},
	{"skin", "piel"},
	{" and ", " y "},
	{" or ", " o "},
	{" with ", " con "},
	{" then ", " luego "},
	{"Then ", "Luego "},
}

var productNameRules = []Rule{
	{"Foaming Cleanser", "Limpiador espumoso"},
	{"Hydrating Cleanser", "Limpiador hidratante"},
	{"Gentle Cleanser", "Limpiador suave"},
	{"Cleanser", "Limpiador"},
	{"Face Wash", "Gel limpiador facial"},
	{"Moisturizing Cream", "Crema hidratante"},
	{"Moisturizing Lotion", "Loción hidratante"},
	{"Moisturizer", "Hidratante"},
	{"Night Cream", "Crema de noche"},
	{"Eye Cream", "Contorno de ojos"},
	{"Sunscreen", "Protector solar"},
	{"Broad Spectrum", "Amplio espectro"},
	{"Serum", "Sérum"},
	{"Toner", "Tónico"},
	{"Exfoliant", "Exfoliante"},
	{"Oil-Free", "Sin aceite"},
	{"Fragrance-Free", "Sin fragancia"},
	{"for Sensitive Skin", "para piel sensible"},
	{"for Oily Skin", "para piel grasa"},
	{"for Dry Skin", "para piel seca"},
	{"for All Skin Types", "para todo tipo de piel"},
}

// cleanupPatterns run in order after instruction substitution to fix
// artifacts the phrase tables leave behind.
var cleanupPatterns = []Pattern{
	{regexp.MustCompile(`\bSPF\s*(\d+)`), "FPS $1"},
	{regexp.MustCompile(`\b1\s+times?\s+(?:a|per)\s+day\b`), "1 vez al día"},
	{regexp.MustCompile(`\b(\d+)\s+times\s+(?:a|per)\s+day\b`), "$1 veces al día"},
	{regexp.MustCompile(`\b(\d+)\s+times\s+(?:a|per)\s+week\b`), "$1 veces por semana"},
	{regexp.MustCompile(`\b(\d+)\s*(?:-|to)\s*(\d+)\s+minutes\b`), "$1-$2 minutos"},
	{regexp.MustCompile(`\b1\s+minute\b`), "1 minuto"},
	{regexp.MustCompile(`\b(\d+)\s+minutes\b`), "$1 minutos"},
	{regexp.MustCompile(`\b(\d+)\s+seconds\b`), "$1 segundos"},
	{regexp.MustCompile(`\b(\d+)\s+hours\b`), "$1 horas"},
	{regexp.MustCompile(`\b(\d+)\s+weeks\b`), "$1 semanas"},
	{regexp.MustCompile(`(?i)\b(el|la|los|las)\s+(?:el|la|los|las)\b`), "$1"},
	{regexp.MustCompile(`\s+([,.;:!?])`), "$1"},
}
