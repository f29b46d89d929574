package i18n

// messages holds every translated string by locale and key. English is the
// fallback for keys missing elsewhere.
var messages = map[string]map[string]string{
	"en": {
		"meta.title":       "Byteik | Software House",
		"meta.description": "Byteik builds websites, mobile apps and custom software for growing businesses.",

		"menu.home":      "Home",
		"menu.whyus":     "Why Us",
		"menu.portfolio": "Portfolio",
		"menu.solutions": "Solutions",
		"menu.stack":     "Tech Stack",
		"menu.letstalk":  "Let's Talk",
		"menu.open":      "Open menu",
		"menu.close":     "Close menu",

		"hero.title1":    "Build digital products",
		"hero.title2":    "that move your business",
		"hero.summarize": "We design, build and maintain websites, mobile apps and internal tools so you can focus on running your business.",
		"hero.schedule":  "Schedule a Consultation",

		"whyus.title1":     "Why choose Byteik?",
		"whyus.subtitle1":  "A team that ships",
		"whyus.summarize1": "Small, senior teams with clear weekly milestones and working software at every step.",
		"whyus.subtitle2":  "Built to last",
		"whyus.summarize2": "Maintainable code, documented handover and support after launch.",

		"portofolio.title1":      "Our Portfolio",
		"portofolio.portotitle1": "Company Profile",
		"portofolio.porto1":      "Fast, multilingual company websites that convert visitors into leads.",
		"portofolio.portotitle2": "E-Commerce",
		"portofolio.porto2":      "Storefronts with payments, inventory and order tracking.",
		"portofolio.portotitle3": "Mobile App",
		"portofolio.porto3":      "Cross-platform apps for customers and field teams.",
		"portofolio.portotitle4": "Dashboard",
		"portofolio.porto4":      "Internal dashboards that turn operational data into decisions.",

		"service.title1":        "Our Solutions",
		"service.serviceTitle1": "Web Development",
		"service.service1":      "Landing pages, company profiles and web applications.",
		"service.serviceTitle2": "Mobile Development",
		"service.service2":      "Android and iOS apps from one codebase.",
		"service.serviceTitle3": "UI/UX Design",
		"service.service3":      "Research, wireframes and design systems.",
		"service.serviceTitle4": "Maintenance",
		"service.service4":      "Hosting, monitoring and continuous improvement.",

		"stack.title1": "Technologies",
		"stack.title2": "we work with",

		"cta.title1":     "Ready to start your project?",
		"cta.summarize1": "Tell us what you need and we will get back to you within one business day.",
		"cta.schedule":   "Schedule a Call",

		"cta.form.title1":            "Contact Us",
		"cta.form.summarize1":        "Leave your details and a short message.",
		"cta.form.field1":            "Name",
		"cta.form.field2":            "Email",
		"cta.form.field3":            "Message",
		"cta.form.field3placeholder": "Tell us about your project",
		"cta.form.button":            "Send Message",
		"cta.form.sending":           "Sending...",
		"cta.form.requiredMsg":       "Please fill in all fields.",
		"cta.form.emailInvalid":      "Please enter a valid email address.",
		"cta.form.success":           "Thank you! Your message has been sent.",
		"cta.form.error":             "Something went wrong. Please try again.",
		"cta.form.policy":            "By sending this form you agree to our",
		"cta.form.policyButton":      "Privacy Policy",

		"footer.about":     "About",
		"footer.summarize": "Byteik is a software house helping businesses grow with technology.",
		"footer.whyus":     "Why Us",
		"footer.service":   "Services",
		"footer.stack":     "Tech Stack",
		"footer.contact":   "Contact",

		"notfound.title": "Page not found",
		"notfound.body":  "Sorry, we couldn't find the page you're looking for.",
		"notfound.back":  "Back to Home",
	},
	"id": {
		"meta.title":       "Byteik | Software House",
		"meta.description": "Byteik membangun website, aplikasi mobile dan software kustom untuk bisnis yang sedang bertumbuh.",

		"menu.home":      "Beranda",
		"menu.whyus":     "Kenapa Kami",
		"menu.portfolio": "Portofolio",
		"menu.solutions": "Solusi",
		"menu.stack":     "Teknologi",
		"menu.letstalk":  "Hubungi Kami",
		"menu.open":      "Buka menu",
		"menu.close":     "Tutup menu",

		"hero.title1":    "Bangun produk digital",
		"hero.title2":    "yang menggerakkan bisnis Anda",
		"hero.summarize": "Kami merancang, membangun dan merawat website, aplikasi mobile dan tools internal agar Anda fokus menjalankan bisnis.",
		"hero.schedule":  "Jadwalkan Konsultasi",

		"whyus.title1":     "Kenapa memilih Byteik?",
		"whyus.subtitle1":  "Tim yang menyelesaikan",
		"whyus.summarize1": "Tim kecil dan berpengalaman dengan target mingguan yang jelas.",
		"whyus.subtitle2":  "Dibangun untuk bertahan",
		"whyus.summarize2": "Kode yang mudah dirawat, serah terima terdokumentasi dan dukungan setelah rilis.",

		"portofolio.title1":      "Portofolio Kami",
		"portofolio.portotitle1": "Company Profile",
		"portofolio.porto1":      "Website perusahaan yang cepat dan multibahasa.",
		"portofolio.portotitle2": "E-Commerce",
		"portofolio.porto2":      "Toko online dengan pembayaran, stok dan pelacakan pesanan.",
		"portofolio.portotitle3": "Aplikasi Mobile",
		"portofolio.porto3":      "Aplikasi lintas platform untuk pelanggan dan tim lapangan.",
		"portofolio.portotitle4": "Dashboard",
		"portofolio.porto4":      "Dashboard internal yang mengubah data operasional menjadi keputusan.",

		"service.title1":        "Solusi Kami",
		"service.serviceTitle1": "Pengembangan Web",
		"service.service1":      "Landing page, company profile dan aplikasi web.",
		"service.serviceTitle2": "Pengembangan Mobile",
		"service.service2":      "Aplikasi Android dan iOS dari satu codebase.",
		"service.serviceTitle3": "Desain UI/UX",
		"service.service3":      "Riset, wireframe dan design system.",
		"service.serviceTitle4": "Pemeliharaan",
		"service.service4":      "Hosting, monitoring dan pengembangan berkelanjutan.",

		"stack.title1": "Teknologi",
		"stack.title2": "yang kami gunakan",

		"cta.title1":     "Siap memulai proyek Anda?",
		"cta.summarize1": "Ceritakan kebutuhan Anda dan kami akan menghubungi Anda dalam satu hari kerja.",
		"cta.schedule":   "Jadwalkan Panggilan",

		"cta.form.title1":            "Hubungi Kami",
		"cta.form.summarize1":        "Tinggalkan data diri dan pesan singkat.",
		"cta.form.field1":            "Nama",
		"cta.form.field2":            "Email",
		"cta.form.field3":            "Pesan",
		"cta.form.field3placeholder": "Ceritakan tentang proyek Anda",
		"cta.form.button":            "Kirim Pesan",
		"cta.form.sending":           "Mengirim...",
		"cta.form.requiredMsg":       "Harap isi semua kolom.",
		"cta.form.emailInvalid":      "Harap masukkan alamat email yang valid.",
		"cta.form.success":           "Terima kasih! Pesan Anda telah terkirim.",
		"cta.form.error":             "Terjadi kesalahan. Silakan coba lagi.",
		"cta.form.policy":            "Dengan mengirim formulir ini Anda menyetujui",
		"cta.form.policyButton":      "Kebijakan Privasi",

		"footer.about":     "Tentang",
		"footer.summarize": "Byteik adalah software house yang membantu bisnis bertumbuh dengan teknologi.",
		"footer.whyus":     "Kenapa Kami",
		"footer.service":   "Layanan",
		"footer.stack":     "Teknologi",
		"footer.contact":   "Kontak",

		"notfound.title": "Halaman tidak ditemukan",
		"notfound.body":  "Maaf, kami tidak dapat menemukan halaman yang Anda cari.",
		"notfound.back":  "Kembali ke Beranda",
	},
}
