package storage

import "github.com/axlerator/axlerator-backend/internal/models"

// SeedTrucks returns the static catalog used when no database is available.
func SeedTrucks() []*models.Truck {
	return []*models.Truck{
		{
			TruckID:         "AX-SEED-001",
			Make:            "Tata",
			TruckModel:      "LPT 3118",
			Year:            2021,
			Kilometers:      84000,
			BodyType:        "container",
			FuelType:        "diesel",
			Capacity:        16.0,
			Location:        "Pune",
			Price:           2150000,
			Certified:       true,
			InspectionScore: 91,
			ReportSummary:   "Engine and gearbox in excellent condition. Tyres at 70% tread. Minor cabin dents, no structural damage.",
			Status:          models.TruckStatusAvailable,
		},
		{
			TruckID:         "AX-SEED-002",
			Make:            "Ashok Leyland",
			TruckModel:      "2820 Tipper",
			Year:            2019,
			Kilometers:      132000,
			BodyType:        "tipper",
			FuelType:        "diesel",
			Capacity:        18.0,
			Location:        "Nagpur",
			Price:           1875000,
			Certified:       true,
			InspectionScore: 84,
			ReportSummary:   "Hydraulics serviced at 120k km. Chassis rust-treated. Brake pads replaced during inspection.",
			Status:          models.TruckStatusAvailable,
		},
		{
			TruckID:         "AX-SEED-003",
			Make:            "BharatBenz",
			TruckModel:      "3528C",
			Year:            2022,
			Kilometers:      46000,
			BodyType:        "tipper",
			FuelType:        "diesel",
			Capacity:        26.5,
			Location:        "Hyderabad",
			Price:           3450000,
			Certified:       true,
			InspectionScore: 95,
			ReportSummary:   "Single owner, full service history. All systems nominal.",
			Status:          models.TruckStatusAvailable,
		},
		{
			TruckID:    "AX-SEED-004",
			Make:       "Eicher",
			TruckModel: "Pro 6028T",
			Year:       2018,
			Kilometers: 210000,
			BodyType:   "trailer",
			FuelType:   "diesel",
			Capacity:   28.0,
			Location:   "Chennai",
			Price:      1420000,
			Certified:  false,
			Status:     models.TruckStatusAvailable,
		},
		{
			TruckID:         "AX-SEED-005",
			Make:            "Tata",
			TruckModel:      "Prima 5530.S",
			Year:            2020,
			Kilometers:      98000,
			BodyType:        "tanker",
			FuelType:        "diesel",
			Capacity:        40.0,
			Location:        "Mumbai",
			Price:           2980000,
			Certified:       true,
			InspectionScore: 88,
			ReportSummary:   "Tank pressure-tested and certified. Fifth wheel coupling replaced. Clutch at 60% life.",
			Status:          models.TruckStatusAvailable,
		},
		{
			TruckID:    "AX-SEED-006",
			Make:       "Mahindra",
			TruckModel: "Blazo X 28",
			Year:       2019,
			Kilometers: 156000,
			BodyType:   "container",
			FuelType:   "diesel",
			Capacity:   28.0,
			Location:   "Delhi",
			Price:      1690000,
			Certified:  false,
			Status:     models.TruckStatusAvailable,
		},
	}
}
