package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/farhanmaulana/clinicdesk/internal/application"
	apppatients "github.com/farhanmaulana/clinicdesk/internal/application/patients"
	appprescriptions "github.com/farhanmaulana/clinicdesk/internal/application/prescriptions"
	appreports "github.com/farhanmaulana/clinicdesk/internal/application/reports"
	"github.com/farhanmaulana/clinicdesk/internal/config"
	dompatients "github.com/farhanmaulana/clinicdesk/internal/domain/patients"
	domprescriptions "github.com/farhanmaulana/clinicdesk/internal/domain/prescriptions"
	domreports "github.com/farhanmaulana/clinicdesk/internal/domain/reports"
	mysqldb "github.com/farhanmaulana/clinicdesk/internal/infra/db/mysql"
	postgresdb "github.com/farhanmaulana/clinicdesk/internal/infra/db/postgres"
	"github.com/farhanmaulana/clinicdesk/internal/infra/extract"
	minioStore "github.com/farhanmaulana/clinicdesk/internal/infra/storage"
)

type seedPatient struct {
	name          string
	age           int
	gender        string
	prescriptions []seedPrescription
}

type seedPrescription struct {
	doctor    string
	diagnosis string
	medicines []string
	notes     string
}

var demoPatients = []seedPatient{
	{
		name: "Aarav Mehta", age: 45, gender: "Male",
		prescriptions: []seedPrescription{
			{
				doctor:    "Dr. Anjali Rao",
				diagnosis: "Type 2 Diabetes Mellitus with hypertension",
				medicines: []string{
					"Metformin 500mg - twice daily after meals",
					"Amlodipine 5mg - once daily in the morning",
					"Aspirin 75mg - once daily after breakfast",
				},
				notes: "Monitor blood glucose daily. Avoid sugary foods. Follow-up in 4 weeks.",
			},
			{
				doctor:    "Dr. Suresh Kumar",
				diagnosis: "Hyperlipidaemia",
				medicines: []string{"Atorvastatin 20mg - once daily at night"},
				notes:     "Lipid profile to be repeated after 3 months. Low-fat diet advised.",
			},
		},
	},
	{
		name: "Priya Sharma", age: 32, gender: "Female",
		prescriptions: []seedPrescription{
			{
				doctor:    "Dr. Meena Iyer",
				diagnosis: "Iron-deficiency anaemia",
				medicines: []string{
					"Ferrous sulphate 200mg - once daily",
					"Folic acid 5mg - once daily",
					"Vitamin C 500mg - once daily",
				},
				notes: "Take iron tablets on empty stomach. Avoid tea/coffee 1 hour before/after.",
			},
		},
	},
	{
		name: "Rohan Desai", age: 60, gender: "Male",
		prescriptions: []seedPrescription{
			{
				doctor:    "Dr. Prakash Joshi",
				diagnosis: "Chronic Obstructive Pulmonary Disease (COPD) - Stage II",
				medicines: []string{
					"Tiotropium inhaler 18mcg - once daily",
					"Salbutamol inhaler 100mcg - as needed",
				},
				notes: "Absolute smoking cessation mandatory. Annual flu vaccination recommended.",
			},
		},
	},
	{
		name: "Sneha Patil", age: 28, gender: "Female",
		prescriptions: []seedPrescription{
			{
				doctor:    "Dr. Anjali Rao",
				diagnosis: "Polycystic Ovary Syndrome (PCOS) with insulin resistance",
				medicines: []string{
					"Metformin 500mg - twice daily",
					"Inositol 2g - once daily",
				},
				notes: "Regular exercise 30 min/day. Low-glycaemic-index diet. USG pelvis in 3 months.",
			},
		},
	},
	{
		name: "Vikram Nair", age: 52, gender: "Male",
		prescriptions: []seedPrescription{
			{
				doctor:    "Dr. Suresh Kumar",
				diagnosis: "Coronary Artery Disease - post PTCA (2023)",
				medicines: []string{
					"Clopidogrel 75mg - once daily",
					"Aspirin 75mg - once daily",
					"Rosuvastatin 40mg - once daily at night",
				},
				notes: "Strict low-salt diet. Cardiac review every 3 months.",
			},
		},
	},
}

const demoReportText = `Complete Blood Count

Hemoglobin: 14.2 g/dL (Normal: 12-16)
WBC: 8500 /uL (Normal: 4000-11000)
Platelets: 250000 /uL (Normal: 150000-450000)

Impression: values within normal limits.
`

func main() {
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	var (
		db               *sql.DB
		patientRepo      dompatients.Repository
		prescriptionRepo domprescriptions.Repository
		reportRepo       domreports.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		if err := postgresdb.Migrate(ctx, db); err != nil {
			log.Fatalf("postgres migrate error: %v", err)
		}
		patientRepo = postgresdb.NewPatientRepository(db)
		prescriptionRepo = postgresdb.NewPrescriptionRepository(db)
		reportRepo = postgresdb.NewReportRepository(db)
	default:
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		if err := mysqldb.Migrate(ctx, db); err != nil {
			log.Fatalf("mysql migrate error: %v", err)
		}
		patientRepo = mysqldb.NewPatientRepository(db)
		prescriptionRepo = mysqldb.NewPrescriptionRepository(db)
		reportRepo = mysqldb.NewReportRepository(db)
	}
	defer db.Close()

	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	clock := application.SystemClock{}
	patientsSvc := &apppatients.Service{Repo: patientRepo, Clock: clock}
	prescriptionsSvc := &appprescriptions.Service{Repo: prescriptionRepo, Clock: clock}
	reportsSvc := &appreports.Service{
		Repo:    reportRepo,
		Files:   store,
		Extract: extract.NewService(store),
		Clock:   clock,
	}

	for _, sp := range demoPatients {
		p, err := patientsSvc.Create(ctx, apppatients.CreatePatientCommand{
			Name:   sp.name,
			Age:    sp.age,
			Gender: sp.gender,
		})
		if err != nil {
			log.Fatalf("seed patient %s: %v", sp.name, err)
		}
		for _, pr := range sp.prescriptions {
			if _, err := prescriptionsSvc.Create(ctx, appprescriptions.CreatePrescriptionCommand{
				PatientID:  p.ID,
				DoctorName: pr.doctor,
				Diagnosis:  pr.diagnosis,
				Medicines:  pr.medicines,
				Notes:      pr.notes,
			}); err != nil {
				log.Fatalf("seed prescription for %s: %v", sp.name, err)
			}
		}
		log.Printf("seeded patient %s (id=%d, %d prescriptions)", p.Name, p.ID, len(sp.prescriptions))
	}

	// One text report so the analyze flow has something to chew on.
	rep, err := reportsSvc.Upload(ctx, appreports.UploadReportCommand{
		PatientID:  1,
		DoctorName: "Dr. Anjali Rao",
		Title:      "Complete Blood Count",
		Filename:   "cbc_report.txt",
		Data:       []byte(demoReportText),
	})
	if err != nil {
		log.Fatalf("seed report: %v", err)
	}
	log.Printf("seeded report %d (%s)", rep.ID, rep.StoredFilename)
}
