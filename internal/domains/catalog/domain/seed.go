package domain

// SeedProducts returns the launch catalog used when no database is configured.
func SeedProducts() []*Product {
	return []*Product{
		{
			ID: 1, Name: "Arduino Uno R3 Original", Price: 12500, Stock: 15,
			LowStockThreshold: DefaultLowStockThreshold,
			Category:          CategoryMicrocontrollers, Rating: 4.9,
			Description:  "Placa de desarrollo con microcontrolador ATmega328P, la base de cualquier proyecto de electrónica.",
			Guide:        "Conecta la placa por USB y carga tu primer sketch desde el IDE de Arduino.",
			ProTip:       "Usa una fuente externa de 9V si alimentas servos o más de cuatro LEDs.",
			Specs:        map[string]string{"Microcontrolador": "ATmega328P", "Voltaje": "5V", "Pines digitales": "14"},
			Installments: 3, DeliveryDays: "2-4", Tags: []string{"arduino", "starter"},
		},
		{
			ID: 2, Name: "Kit Resistencias 1/4W x600", Price: 8900, Stock: 30,
			LowStockThreshold: DefaultLowStockThreshold,
			Category:          CategoryPassives, Rating: 4.7,
			Description:  "Surtido de 600 resistencias de película de carbono en 30 valores, de 10Ω a 1MΩ.",
			Guide:        "Identifica el valor por el código de colores o con un multímetro en escala de ohms.",
			ProTip:       "Guarda cada valor en su bolsa etiquetada, mezclarlas cuesta caro en tiempo.",
			Specs:        map[string]string{"Potencia": "1/4W", "Tolerancia": "5%", "Valores": "30"},
			Installments: 1, DeliveryDays: "2-4", Tags: []string{"resistencias", "kit"},
		},
		{
			ID: 3, Name: "Multímetro Digital Pro", Price: 24990, Stock: 8,
			LowStockThreshold: DefaultLowStockThreshold,
			Category:          CategoryTools, Rating: 4.9,
			Description:  "Multímetro True RMS con medición de voltaje, corriente, resistencia, capacitancia y temperatura.",
			Guide:        "Selecciona la escala antes de conectar las puntas al circuito.",
			ProTip:       "Nunca midas resistencia en un circuito energizado.",
			Specs:        map[string]string{"Pantalla": "6000 cuentas", "True RMS": "Sí", "CAT": "III 600V"},
			Installments: 6, DeliveryDays: "2-4", Tags: []string{"medición", "taller"},
		},
		{
			ID: 4, Name: "Cautín Cerámico 60W", Price: 14500, Stock: 22,
			LowStockThreshold: DefaultLowStockThreshold,
			Category:          CategoryTools, Rating: 4.6,
			Description:  "Cautín de temperatura regulable de 200°C a 450°C con núcleo cerámico de calentamiento rápido.",
			Guide:        "Estaña la punta antes del primer uso y límpiala en esponja húmeda entre soldaduras.",
			ProTip:       "Para componentes delicados trabaja entre 300°C y 350°C.",
			Specs:        map[string]string{"Potencia": "60W", "Temperatura": "200-450°C"},
			Installments: 3, DeliveryDays: "2-4", Tags: []string{"soldadura"},
		},
		{
			ID: 5, Name: "Capacitor Electrolítico 1000uF", Price: 1500, Stock: 45,
			LowStockThreshold: DefaultLowStockThreshold,
			Category:          CategoryPassives, Rating: 4.8,
			Description:  "Capacitor electrolítico radial de 1000uF 25V para filtrado de fuentes.",
			Guide:        "Respeta la polaridad: la franja marca el terminal negativo.",
			ProTip:       "Deja margen de voltaje, para rieles de 12V usa al menos 25V.",
			Specs:        map[string]string{"Capacitancia": "1000uF", "Voltaje": "25V"},
			Installments: 1, DeliveryDays: "2-4", Tags: []string{"capacitor"},
		},
		{
			ID: 6, Name: "Transistor NPN 2N2222", Price: 800, Stock: 120,
			LowStockThreshold: DefaultLowStockThreshold,
			Category:          CategorySemiconductors, Rating: 5.0,
			Description:  "Transistor NPN de propósito general para conmutación y amplificación de pequeña señal.",
			Guide:        "Con el plano al frente los pines son emisor, base y colector de izquierda a derecha.",
			ProTip:       "Agrega una resistencia de base de 1kΩ cuando lo uses como interruptor desde un GPIO.",
			Specs:        map[string]string{"Tipo": "NPN", "Ic máx": "800mA", "Vceo": "40V"},
			Installments: 1, DeliveryDays: "2-4", Tags: []string{"transistor", "npn"},
		},
	}
}
