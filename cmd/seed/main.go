package main

import (
	"fmt"
	"time"

	"github.com/bloodlink-next/internal/config"
	"github.com/bloodlink-next/internal/logger"
	"github.com/bloodlink-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加献血类型
	donationTypes := []models.DonationType{
		{Name: "Whole Blood", Description: "全血捐献，一次约 350-450 毫升"},
		{Name: "Plasma", Description: "血浆单采捐献"},
		{Name: "Platelets", Description: "血小板单采捐献"},
	}

	for _, dt := range donationTypes {
		var existing models.DonationType
		if err := models.DB.Where("name = ?", dt.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&dt).Error; err != nil {
				stdLog.Printf("Failed to create donation type %s: %v", dt.Name, err)
			} else {
				stdLog.Printf("Created donation type: %s", dt.Name)
			}
		} else {
			stdLog.Printf("Donation type already exists: %s", dt.Name)
		}
	}

	// 添加血站与工作人员
	center := models.BloodCenter{
		Name:      "Central Blood Center",
		ContactNo: "010-88886666",
		Street:    "128 Chaoyang North Road",
		City:      "Beijing",
	}
	var existingCenter models.BloodCenter
	if err := models.DB.Where("name = ?", center.Name).First(&existingCenter).Error; err != nil {
		if err := models.DB.Create(&center).Error; err != nil {
			stdLog.Printf("Failed to create blood center %s: %v", center.Name, err)
		} else {
			stdLog.Printf("Created blood center: %s", center.Name)
		}
	} else {
		center = existingCenter
		stdLog.Printf("Blood center already exists: %s", center.Name)
	}

	staffMembers := []models.Staff{
		{Name: "Li Wen", Role: "phlebotomist", CenterID: center.ID, ContactNo: "138-0000-1001"},
		{Name: "Zhang Rui", Role: "lab_technician", CenterID: center.ID, ContactNo: "138-0000-1002"},
		{Name: "Wang Jing", Role: "courier", CenterID: center.ID, ContactNo: "138-0000-1003"},
	}
	for _, st := range staffMembers {
		if st.CenterID == 0 {
			stdLog.Printf("Skip staff %s: center_id missing", st.Name)
			continue
		}
		var existing models.Staff
		if err := models.DB.Where("name = ? AND center_id = ?", st.Name, st.CenterID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&st).Error; err != nil {
				stdLog.Printf("Failed to create staff %s: %v", st.Name, err)
			} else {
				stdLog.Printf("Created staff: %s", st.Name)
			}
		} else {
			stdLog.Printf("Staff already exists: %s", st.Name)
		}
	}

	// 添加合作医院、医生与患者
	hospital := models.Hospital{
		Name:      "Union Teaching Hospital",
		ContactNo: "010-66008800",
		Street:    "1 Shuaifuyuan",
		City:      "Beijing",
	}
	var existingHospital models.Hospital
	if err := models.DB.Where("name = ?", hospital.Name).First(&existingHospital).Error; err != nil {
		if err := models.DB.Create(&hospital).Error; err != nil {
			stdLog.Printf("Failed to create hospital %s: %v", hospital.Name, err)
		} else {
			stdLog.Printf("Created hospital: %s", hospital.Name)
		}
	} else {
		hospital = existingHospital
		stdLog.Printf("Hospital already exists: %s", hospital.Name)
	}

	doctors := []models.Doctor{
		{Name: "Chen Hua", Speciality: "Hematology", HospitalID: hospital.ID, ContactNo: "139-0000-2001"},
		{Name: "Liu Yang", Speciality: "General Surgery", HospitalID: hospital.ID, ContactNo: "139-0000-2002"},
	}
	for _, doc := range doctors {
		if doc.HospitalID == 0 {
			stdLog.Printf("Skip doctor %s: hospital_id missing", doc.Name)
			continue
		}
		var existing models.Doctor
		if err := models.DB.Where("name = ? AND hospital_id = ?", doc.Name, doc.HospitalID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&doc).Error; err != nil {
				stdLog.Printf("Failed to create doctor %s: %v", doc.Name, err)
			} else {
				stdLog.Printf("Created doctor: %s", doc.Name)
			}
		} else {
			stdLog.Printf("Doctor already exists: %s", doc.Name)
		}
	}

	patients := []models.Patient{
		{
			Name:        "Zhao Min",
			DateOfBirth: time.Date(1988, 5, 12, 0, 0, 0, 0, time.UTC),
			Gender:      "female",
			BloodGroup:  "A+",
			HospitalID:  hospital.ID,
		},
		{
			Name:        "Sun Lei",
			DateOfBirth: time.Date(1975, 11, 3, 0, 0, 0, 0, time.UTC),
			Gender:      "male",
			BloodGroup:  "O-",
			HospitalID:  hospital.ID,
		},
	}
	for _, p := range patients {
		if p.HospitalID == 0 {
			stdLog.Printf("Skip patient %s: hospital_id missing", p.Name)
			continue
		}
		var existing models.Patient
		if err := models.DB.Where("name = ? AND hospital_id = ?", p.Name, p.HospitalID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create patient %s: %v", p.Name, err)
			} else {
				stdLog.Printf("Created patient: %s", p.Name)
			}
		} else {
			stdLog.Printf("Patient already exists: %s", p.Name)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Donation types (Whole Blood / Plasma / Platelets)")
	fmt.Println("- 1 Blood center with 3 staff members")
	fmt.Println("- 1 Hospital with 2 doctors and 2 patients")
}
